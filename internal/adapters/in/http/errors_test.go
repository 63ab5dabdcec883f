package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"encomendas/internal/core/application/usecases/queries"
	"encomendas/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewObjectNotFoundError("order", 1), http.StatusNotFound, "not_found"},
		{"duplicate code", errs.NewDuplicateCodeError("client", "C1"), http.StatusConflict, "duplicate_code"},
		{"entity in use", errs.NewEntityInUseError("product", 1, 2), http.StatusConflict, "entity_in_use"},
		{"order has delivery", errs.NewOrderHasDeliveryError(1), http.StatusConflict, "order_has_delivery"},
		{"concurrency", errs.NewConcurrencyConflictError("order", 1, 3), http.StatusConflict, "concurrency_conflict"},
		{"transition", errs.NewStatusTransitionError("criada", "pronta"), http.StatusUnprocessableEntity, "invalid_status_transition"},
		{"cross tenant", errs.NewCrossTenantReferenceError("clientId", 1), http.StatusUnprocessableEntity, "cross_tenant_reference"},
		{"wrapped", fmt.Errorf("saving: %w", errs.NewInvalidPriceError("0")), http.StatusUnprocessableEntity, "invalid_price"},
		{"bad request", newBadRequest("malformed"), http.StatusBadRequest, "invalid_request"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
		{
			"unreadable stored row",
			fmt.Errorf("%w: order 1: %v", queries.ErrUnreadableRow, errs.NewValueIsInvalidError("status")),
			http.StatusInternalServerError, "internal_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := toResponse(tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestToResponse_HidesInternalErrors(t *testing.T) {
	_, body := toResponse(errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)
}

func TestToResponse_ValidationErrorListsFields(t *testing.T) {
	var v errs.ValidationError
	v.Add("clientId", errs.NewObjectNotFoundError("client", 1))
	v.Add("items[0].quantity", errs.NewInvalidQuantityOrPriceError("quantity", 0))

	status, body := toResponse(v.ErrOrNil())

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_failed", body.Code)
	require.Len(t, body.Violations, 2)
	assert.Equal(t, Violation{Field: "clientId", Code: "not_found", Message: body.Violations[0].Message}, body.Violations[0])
	assert.Equal(t, "invalid_quantity_or_price", body.Violations[1].Code)
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()
	bad := "2024/05/01"
	req := CreateOrderRequest{
		OrderedAt: &bad,
		Items:     []OrderItemRequest{{}},
	}

	err := v.Validate(req)

	var br *badRequestError
	require.ErrorAs(t, err, &br)
	require.Len(t, br.violations, 1)
	assert.Equal(t, "orderedAt", br.violations[0].Field)
	assert.Equal(t, "datetime", br.violations[0].Code)

	good := "2024-05-01"
	req.OrderedAt = &good
	assert.NoError(t, v.Validate(req))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].quantity", fieldPath("CreateOrderRequest.items[0].quantity"))
	assert.Equal(t, "status", fieldPath("status"))
}
