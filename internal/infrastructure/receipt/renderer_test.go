package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/documents/bill"
)

func sampleBill() *bill.Bill {
	return &bill.Bill{
		ID:            id.MustParse("0195f7a0-0000-7000-8000-000000000001"),
		BillNumber:    "BILL-1721900000000-042",
		Status:        bill.StatusPending,
		PaymentMethod: "cash",
		TotalCost:     types.MustMoney("15.00"),
		CreatedAt:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Items: []bill.LineItem{
			{LineNo: 1, Quantity: 3, Cost: types.MustMoney("15.00"), ProductName: "Rice & Beans"},
		},
	}
}

func TestRenderContainsBillFields(t *testing.T) {
	r := NewHTMLRenderer("Tillpoint Store")
	renderedAt := time.Date(2025, 3, 14, 10, 5, 0, 0, time.UTC)

	out, err := r.Render(context.Background(), sampleBill(), renderedAt)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Tillpoint Store")
	assert.Contains(t, html, "BILL-1721900000000-042")
	assert.Contains(t, html, "0195f7a0-0000-7000-8000-000000000001")
	assert.Contains(t, html, "2025-03-14 10:05:00")
	assert.Contains(t, html, "cash")
	assert.Contains(t, html, "15.00")
	// Product names are HTML-escaped.
	assert.Contains(t, html, "Rice &amp; Beans")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewHTMLRenderer("Tillpoint Store")
	renderedAt := time.Date(2025, 3, 14, 10, 5, 0, 0, time.UTC)
	b := sampleBill()

	first, err := r.Render(context.Background(), b, renderedAt)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), b, renderedAt)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderEmptyItems(t *testing.T) {
	r := NewHTMLRenderer("Tillpoint Store")
	b := sampleBill()
	b.Items = nil

	out, err := r.Render(context.Background(), b, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total")
}
