package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"encomendas/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RequestValidator implements echo.Validator with go-playground/validator.
// Field names in violations are the JSON names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:   fieldPath(fe.Namespace()),
			Code:    fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return newBadRequest("request validation failed", violations...)
}

// fieldPath drops the root struct name: "createOrderRequest.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "datetime":
		return "must match the layout " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "invalid value"
	}
}

// bindBody decodes the JSON body into req and validates it.
func bindBody(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return newBadRequest(fmt.Sprintf("malformed request body: %s", httpErrorText(err)))
	}
	return c.Validate(req)
}

func httpErrorText(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		return httpMessage(he)
	}
	return err.Error()
}

// pathID binds a UUID path parameter the way generated oapi-codegen servers do.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, newBadRequest(fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return kernel.UUIDFromGoogle(id), nil
}

// queryParam binds an optional query parameter into dest, which must be a
// pointer to a pointer so that absence stays nil.
func queryParam(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return newBadRequest(fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// parseDate parses an optional "2006-01-02" date. The request validator has
// already checked the layout.
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := kernel.ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
