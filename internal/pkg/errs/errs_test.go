package errs_test

import (
	"errors"
	"testing"

	"encomendas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	lostConn := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("order", "6c1e"),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: 6c1e",
		},
		{
			name:     "not found with cause names the param",
			err:      errs.NewObjectNotFoundErrorWithCause("order", "6c1e", lostConn),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: param is: order, ID is: 6c1e (cause: connection reset)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("deliveredTime"),
			sentinel: errs.ErrValueIsInvalid,
			want:     "value is invalid: deliveredTime",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("orderedAt", errors.New("not a date")),
			sentinel: errs.ErrValueIsInvalid,
			want:     "value is invalid: orderedAt (cause: not a date)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100000),
			sentinel: errs.ErrValueIsOutOfRange,
			want:     "value is invalid: 0 is quantity, min value is 1, max value is 100000",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("limit", 500, 1, 200, lostConn),
			sentinel: errs.ErrValueIsOutOfRange,
			want:     "value is invalid: 500 is limit, min value is 1, max value is 200 (cause: connection reset)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("clientId"),
			sentinel: errs.ErrValueIsRequired,
			want:     "value is required: clientId",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("signature", errors.New("blank")),
			sentinel: errs.ErrValueIsRequired,
			want:     "value is required: signature (cause: blank)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestValueIsOutOfRangeError_FlattensNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("notes", "linha 1\nlinha 2", 0, 10)

	assert.Contains(t, err.Error(), "linha 1 linha 2")
	assert.NotContains(t, err.Error(), "\n")
}

func TestErrorFields(t *testing.T) {
	cause := errors.New("boom")

	notFound := errs.NewObjectNotFoundErrorWithCause("client", 42, cause)
	assert.Equal(t, "client", notFound.ParamName)
	assert.Equal(t, 42, notFound.ID)
	assert.Same(t, cause, notFound.Cause)

	outOfRange := errs.NewValueIsOutOfRangeError("offset", -1, 0, nil)
	assert.Equal(t, -1, outOfRange.Value)
	assert.Equal(t, 0, outOfRange.Min)
	assert.Nil(t, outOfRange.Max)
	assert.NoError(t, outOfRange.Cause)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := errors.Join(
		errs.NewValueIsRequiredError("code"),
		errs.NewValueIsOutOfRangeError("basePrice", "-1.00", "0.01", nil),
	)

	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	require.ErrorIs(t, wrapped, errs.ErrValueIsOutOfRange)
	assert.NotErrorIs(t, wrapped, errs.ErrObjectNotFound)

	var required *errs.ValueIsRequiredError
	require.ErrorAs(t, wrapped, &required)
	assert.Equal(t, "code", required.ParamName)
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "cross-tenant reference", errs.ErrCrossTenantReference.Error())
	assert.Equal(t, "invalid status transition", errs.ErrInvalidStatusTransition.Error())
}
