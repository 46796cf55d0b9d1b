package bill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/registers/income"
)

func TestValidateRequest(t *testing.T) {
	valid := []LineRequest{{ProductID: id.New(), Quantity: 1}}

	tests := []struct {
		name    string
		lines   []LineRequest
		method  string
		wantErr bool
	}{
		{"ok", valid, income.MethodCash, false},
		{"empty items", nil, income.MethodCash, true},
		{"nil product", []LineRequest{{ProductID: id.Nil(), Quantity: 1}}, income.MethodCash, true},
		{"zero quantity", []LineRequest{{ProductID: id.New(), Quantity: 0}}, income.MethodCash, true},
		{"negative quantity", []LineRequest{{ProductID: id.New(), Quantity: -2}}, income.MethodUPI, true},
		{"unknown method", valid, "cheque", true},
		{"empty method", valid, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.lines, tt.method)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestRecalculateTotal(t *testing.T) {
	doc := &Bill{
		Items: []LineItem{
			{Cost: types.MustMoney("10.005")},
			{Cost: types.MustMoney("5.00")},
		},
	}
	doc.RecalculateTotal()
	assert.Equal(t, "15.01", doc.TotalCost.StringFixed(2))
}
