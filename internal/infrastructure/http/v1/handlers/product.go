package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/catalogs/product"
	"tillpoint/internal/domain/reports"
	"tillpoint/internal/infrastructure/http/v1/dto"
	"tillpoint/internal/infrastructure/storage/postgres"
)

// AuditReader serves the audit trail of an entity.
// Implemented by postgres.AuditService.
type AuditReader interface {
	History(ctx context.Context, entityType string, entityID id.ID) ([]postgres.AuditEntry, error)
}

// ProductHandler handles catalog CRUD and the inventory reports mounted
// under /api/products.
type ProductHandler struct {
	BaseHandler
	service *product.Service
	reports *reports.Service
	audit   AuditReader
}

func NewProductHandler(service *product.Service, reportsService *reports.Service, audit AuditReader) *ProductHandler {
	return &ProductHandler{service: service, reports: reportsService, audit: audit}
}

// Create handles POST /api/products (admin only).
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToModel()
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{"product": p})
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, len(products), gin.H{"products": products})
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"product": p})
}

// Update handles PATCH /api/products/:id (admin only).
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), productID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"product": p})
}

// Delete handles DELETE /api/products/:id (admin only).
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AuditHistory handles GET /api/products/:id/audit (admin only): the
// product's recorded mutations, newest first.
func (h *ProductHandler) AuditHistory(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.audit.History(c.Request.Context(), "product", productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, len(entries), gin.H{"audit": entries})
}

// InventorySummary handles GET /api/products/inventory/total.
func (h *ProductHandler) InventorySummary(c *gin.Context) {
	summary, err := h.reports.InventorySummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"summary": summary})
}

// CategoryReport handles GET /api/products/inventory/category.
func (h *ProductHandler) CategoryReport(c *gin.Context) {
	report, err := h.reports.CategoryReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"report": report})
}

// IncomeStats handles GET /api/products/inventory/income-stats: bucketed
// income aggregated from the bill collection.
func (h *ProductHandler) IncomeStats(c *gin.Context) {
	var query dto.IncomeStatsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	stats, err := h.reports.BillIncomeStats(c.Request.Context(), reports.ParsePeriod(query.Period))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"period": stats.Period, "stats": stats.Stats})
}

// DailyIncome handles GET /api/products/daily-income: raw ledger rows
// for an optional date range, no gap filling.
func (h *ProductHandler) DailyIncome(c *gin.Context) {
	var query dto.DailyIncomeQuery
	if !h.BindQuery(c, &query) {
		return
	}

	from, ok := h.parseDate(c, "startDate", query.StartDate)
	if !ok {
		return
	}
	to, ok := h.parseDate(c, "endDate", query.EndDate)
	if !ok {
		return
	}

	rows, err := h.reports.DailyIncomeRange(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OKList(c, len(rows), gin.H{"dailyIncome": rows})
}

func (h *ProductHandler) parseDate(c *gin.Context, name, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		h.Error(c, apperror.NewValidation("Invalid date, expected YYYY-MM-DD").WithDetail(name, value))
		return time.Time{}, false
	}
	return t, true
}
