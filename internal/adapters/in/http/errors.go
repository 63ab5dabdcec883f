package http

import (
	"errors"
	"net/http"

	"encomendas/internal/pkg/errs"
	"encomendas/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

// Violation points at the input field a failure was found on.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorKind maps a sentinel to its response code and HTTP status. The first
// match wins.
type errorKind struct {
	target error
	code   string
	status int
}

var errorKinds = []errorKind{
	{errs.ErrObjectNotFound, "not_found", http.StatusNotFound},
	{errs.ErrDuplicateCode, "duplicate_code", http.StatusConflict},
	{errs.ErrEntityInUse, "entity_in_use", http.StatusConflict},
	{errs.ErrOrderHasDelivery, "order_has_delivery", http.StatusConflict},
	{errs.ErrConcurrencyConflict, "concurrency_conflict", http.StatusConflict},
	{errs.ErrInvalidStatusTransition, "invalid_status_transition", http.StatusUnprocessableEntity},
	{errs.ErrCrossTenantReference, "cross_tenant_reference", http.StatusUnprocessableEntity},
	{errs.ErrInvalidQuantityOrPrice, "invalid_quantity_or_price", http.StatusUnprocessableEntity},
	{errs.ErrInvalidPrice, "invalid_price", http.StatusUnprocessableEntity},
	{errs.ErrMissingRequiredDeliveryField, "missing_required_delivery_field", http.StatusUnprocessableEntity},
	{errs.ErrValueIsRequired, "value_is_required", http.StatusUnprocessableEntity},
	{errs.ErrValueIsInvalid, "value_is_invalid", http.StatusUnprocessableEntity},
	{errs.ErrValueIsOutOfRange, "value_is_out_of_range", http.StatusUnprocessableEntity},
}

func classify(err error) (string, int) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.code, k.status
		}
	}
	return "internal_error", http.StatusInternalServerError
}

// toResponse turns an application error into a status and a body.
//
// A ValidationError is always 422, whatever it wraps: a missing client named
// in an order is a problem with the input, not a missing resource. Its
// violations carry their own codes.
func toResponse(err error) (int, Error) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, Error{Code: httpCode(he.Code), Message: httpMessage(he)}
	}

	var bad *badRequestError
	if errors.As(err, &bad) {
		return http.StatusBadRequest, Error{Code: "invalid_request", Message: bad.message, Violations: bad.violations}
	}

	var v *errs.ValidationError
	if errors.As(err, &v) {
		body := Error{Code: "validation_failed", Message: "the request has invalid fields"}
		for _, fe := range v.Fields {
			code, _ := classify(fe.Err)
			body.Violations = append(body.Violations, Violation{Field: fe.Field, Code: code, Message: fe.Err.Error()})
		}
		return http.StatusUnprocessableEntity, body
	}

	code, status := classify(err)
	if status == http.StatusInternalServerError {
		return status, Error{Code: code, Message: http.StatusText(status)}
	}
	return status, Error{Code: code, Message: err.Error()}
}

func httpCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case status >= http.StatusInternalServerError:
		return "internal_error"
	default:
		return "invalid_request"
	}
}

func httpMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}

// badRequestError reports input that could not be decoded or failed the
// request schema, before any use case ran.
type badRequestError struct {
	message    string
	violations []Violation
}

func (e *badRequestError) Error() string {
	return e.message
}

func newBadRequest(message string, violations ...Violation) error {
	return &badRequestError{message: message, violations: violations}
}

// NewErrorHandler renders every error returned by a handler or middleware.
// Server-side failures are logged; client errors are not.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toResponse(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(c.Request().Context(), log).Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("writing error response", zap.Error(err))
		}
	}
}
