package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// LoadSpec parses and validates the embedded API contract.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// swaggerDoc serves the contract to the swagger UI as JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// swag panics on a second registration under the same name.
var swaggerOnce sync.Once

func registerSwaggerDoc(doc *openapi3.T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}

// RequestValidation checks requests against the contract before they reach a
// handler. Requests for paths the contract does not describe pass through.
func RequestValidation(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) {
					return next(c)
				}
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return newBadRequest("request does not match the API contract", contractViolations(err)...)
			}
			return next(c)
		}
	}, nil
}

func contractViolations(err error) []Violation {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		multi = openapi3.MultiError{err}
	}

	violations := make([]Violation, 0, len(multi))
	for _, e := range multi {
		v := Violation{Code: "contract", Message: e.Error()}

		var reqErr *openapi3filter.RequestError
		if errors.As(e, &reqErr) {
			switch {
			case reqErr.Parameter != nil:
				v.Field = reqErr.Parameter.Name
			case reqErr.RequestBody != nil:
				v.Field = "body"
			}
			if reqErr.Reason != "" {
				v.Message = reqErr.Reason
			}
		}

		var schemaErr *openapi3.SchemaError
		if errors.As(e, &schemaErr) {
			if ptr := schemaErr.JSONPointer(); len(ptr) > 0 {
				v.Field = strings.Join(ptr, ".")
			}
			v.Message = schemaErr.Reason
		}
		violations = append(violations, v)
	}
	return violations
}
