package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Product)
		wantMsg string
	}{
		{"ok", func(*Product) {}, ""},
		{"missing name", func(p *Product) { p.Name = "" }, "Please provide product name"},
		{"missing category", func(p *Product) { p.Category = "" }, "Please provide product category"},
		{"negative price", func(p *Product) { p.CostPrice = types.MustMoney("-1") }, "cost price must not be negative"},
		{"negative stock", func(p *Product) { p.CurrentStock = -1 }, "current stock must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("Rice", "Grains", types.MustMoney("2.50"), 100)
			tt.mutate(p)

			err := p.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestApplyPatch(t *testing.T) {
	p := New("Rice", "Grains", types.MustMoney("2.50"), 100)
	before := p.UpdatedAt

	newPrice := types.MustMoney("3.00")
	newStock := int64(80)
	require.NoError(t, p.Apply(Patch{CostPrice: &newPrice, CurrentStock: &newStock}))

	assert.Equal(t, "Rice", p.Name)
	assert.Equal(t, "3.00", p.CostPrice.StringFixed(2))
	assert.EqualValues(t, 80, p.CurrentStock)
	assert.False(t, p.UpdatedAt.Before(before))
}

func TestApplyPatchRevalidates(t *testing.T) {
	p := New("Rice", "Grains", types.MustMoney("2.50"), 100)

	empty := ""
	err := p.Apply(Patch{Name: &empty})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestStockValue(t *testing.T) {
	p := New("Rice", "Grains", types.MustMoney("2.50"), 100)
	assert.Equal(t, "250.00", p.StockValue().StringFixed(2))
}
