package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		want int
	}{
		{"validation", NewValidation("bad input"), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("product", "abc"), CodeNotFound, http.StatusNotFound},
		{"insufficient stock", NewInsufficientStock("Rice", "abc", 5, 2), CodeInsufficientStock, http.StatusBadRequest},
		{"persistence", NewPersistence(errors.New("boom")), CodePersistence, http.StatusBadRequest},
		{"internal", NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
		{"unauthorized", NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbidden("staff only"), CodeForbidden, http.StatusForbidden},
		{"conflict", NewConflict("taken"), CodeConflict, http.StatusConflict},
		{"duplicate", NewDuplicate("user", "email", "a@b.c"), CodeDuplicate, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.want, tt.err.HTTPStatus)
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestInsufficientStockDetails(t *testing.T) {
	err := NewInsufficientStock("Rice", "p-1", 5, 2)

	assert.Equal(t, "Insufficient stock for product: Rice", err.Message)
	assert.Equal(t, "p-1", err.Details["product_id"])
	assert.EqualValues(t, 5, err.Details["requested"])
	assert.EqualValues(t, 2, err.Details["available"])
	assert.True(t, IsInsufficientStock(err))
}

func TestUnwrapAndAs(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistence(cause)

	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("layer: %w", err)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodePersistence, appErr.Code)
	assert.True(t, IsAppError(wrapped))
}

func TestGetHTTPStatusFallback(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad").WithDetail("field", "name")
	assert.Equal(t, "name", err.Details["field"])
}
