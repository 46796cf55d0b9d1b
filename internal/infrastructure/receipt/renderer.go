// Package receipt renders bill receipts. The base renderer produces a
// self-contained HTML document; an optional PDF renderer converts that
// document through a Gotenberg service.
package receipt

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/documents/bill"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.BillNumber}}</title>
<style>
body { font-family: monospace; max-width: 420px; margin: 0 auto; }
h1 { text-align: center; font-size: 1.2em; }
table { width: 100%; border-collapse: collapse; }
td, th { text-align: left; padding: 2px 4px; }
td.amount, th.amount { text-align: right; }
tfoot td { border-top: 1px solid #000; font-weight: bold; }
.meta { margin: 8px 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">
<div>Bill No: {{.BillNumber}}</div>
<div>Bill ID: {{.BillID}}</div>
<div>Date: {{.RenderedAt}}</div>
<div>Payment: {{.PaymentMethod}}</div>
</div>
<table>
<thead>
<tr><th>Item</th><th class="amount">Qty</th><th class="amount">Cost</th></tr>
</thead>
<tbody>
{{range .Items}}<tr><td>{{.Name}}</td><td class="amount">{{.Quantity}}</td><td class="amount">{{.Cost}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td>Total</td><td></td><td class="amount">{{.Total}}</td></tr>
</tfoot>
</table>
</body>
</html>
`

const timestampFormat = "2006-01-02 15:04:05"

type itemView struct {
	Name     string
	Quantity int64
	Cost     string
}

type receiptView struct {
	Title         string
	BillID        string
	BillNumber    string
	RenderedAt    string
	PaymentMethod string
	Items         []itemView
	Total         string
}

// HTMLRenderer renders a bill into a printable HTML receipt. Output is
// deterministic for a given bill and render time.
type HTMLRenderer struct {
	title string
	tmpl  *template.Template
}

// NewHTMLRenderer builds the renderer; title heads every receipt.
func NewHTMLRenderer(title string) *HTMLRenderer {
	return &HTMLRenderer{
		title: title,
		tmpl:  template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

func (r *HTMLRenderer) Render(_ context.Context, b *bill.Bill, renderedAt time.Time) ([]byte, error) {
	view := receiptView{
		Title:         r.title,
		BillID:        b.ID.String(),
		BillNumber:    b.BillNumber,
		RenderedAt:    renderedAt.Format(timestampFormat),
		PaymentMethod: b.PaymentMethod,
		Total:         types.Round2(b.TotalCost).StringFixed(2),
	}
	for _, item := range b.Items {
		view.Items = append(view.Items, itemView{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Cost:     types.Round2(item.Cost).StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
