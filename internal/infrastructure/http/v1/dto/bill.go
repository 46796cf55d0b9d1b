package dto

import (
	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/documents/bill"
)

// BillItemRequest is one requested line of a bill.
type BillItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// GenerateBillRequest is the payload for POST /api/bills.
type GenerateBillRequest struct {
	Items         []BillItemRequest `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
}

// ToLines parses product IDs into domain line requests.
func (r *GenerateBillRequest) ToLines() ([]bill.LineRequest, error) {
	lines := make([]bill.LineRequest, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("Invalid product id").
				WithDetail("productId", item.ProductID)
		}
		lines = append(lines, bill.LineRequest{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

// GenerateBillResponse carries the persisted bill and its receipt.
// Receipt is base64-encoded by the JSON encoder.
type GenerateBillResponse struct {
	Bill    *bill.Bill `json:"bill"`
	Receipt []byte     `json:"receipt"`
}
