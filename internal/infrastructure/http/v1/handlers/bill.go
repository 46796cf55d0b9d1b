package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/domain/documents/bill"
	"tillpoint/internal/domain/reports"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// BillHandler handles bill generation, retrieval and the ledger-based
// income statistics mounted under /api/bills.
type BillHandler struct {
	BaseHandler
	service *bill.Service
	reports *reports.Service
}

func NewBillHandler(service *bill.Service, reportsService *reports.Service) *BillHandler {
	return &BillHandler{service: service, reports: reportsService}
}

// Generate handles POST /api/bills/generate: the full workflow of stock
// deduction, persistence, income ledger update and receipt rendering.
func (h *BillHandler) Generate(c *gin.Context) {
	var req dto.GenerateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines, err := req.ToLines()
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, receipt, err := h.service.Generate(c.Request.Context(), lines, req.PaymentMethod)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.GenerateBillResponse{Bill: doc, Receipt: receipt})
}

// List handles GET /api/bills, newest first.
func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, len(bills), gin.H{"bills": bills})
}

// Get handles GET /api/bills/:id.
func (h *BillHandler) Get(c *gin.Context) {
	billID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), billID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"bill": doc})
}

// Receipt handles GET /api/bills/:id/pdf: re-renders the receipt
// for an existing bill.
func (h *BillHandler) Receipt(c *gin.Context) {
	billID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.service.RenderReceipt(c.Request.Context(), billID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"receipt": receipt})
}

// IncomeStats handles GET /api/bills/income-stats: bucketed income
// aggregated from the daily income ledger.
func (h *BillHandler) IncomeStats(c *gin.Context) {
	var query dto.IncomeStatsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	stats, err := h.reports.LedgerIncomeStats(c.Request.Context(), reports.ParsePeriod(query.Period))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"period": stats.Period, "stats": stats.Stats})
}
