package bill

import (
	"context"
	"time"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/tx"
	"tillpoint/internal/domain/registers/income"
	"tillpoint/internal/domain/registers/stock"
	"tillpoint/pkg/billnum"
	"tillpoint/pkg/logger"
)

// Renderer turns a resolved bill into a printable document.
// renderedAt is the render call time, not the bill's creation time.
type Renderer interface {
	Render(ctx context.Context, b *Bill, renderedAt time.Time) ([]byte, error)
}

// Service orchestrates the bill-generation workflow.
type Service struct {
	repo       Repository
	ledger     *stock.Ledger
	incomeRepo income.Repository
	numbers    *billnum.Generator
	renderer   Renderer
	txManager  tx.Manager
}

// NewService creates a new bill service.
func NewService(
	repo Repository,
	ledger *stock.Ledger,
	incomeRepo income.Repository,
	numbers *billnum.Generator,
	renderer Renderer,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:       repo,
		ledger:     ledger,
		incomeRepo: incomeRepo,
		numbers:    numbers,
		renderer:   renderer,
		txManager:  txManager,
	}
}

// Generate runs the full bill workflow: per-line stock deduction in the
// submitted order, bill persistence, and the daily income upsert — all
// inside one transaction, so a failing line leaves no partial deductions
// behind. Returns the persisted bill (product details resolved) and the
// rendered receipt.
//
// On failure the specific first error is reported: NOT_FOUND for an
// unresolved product, INSUFFICIENT_STOCK when a line exceeds the
// available stock.
func (s *Service) Generate(ctx context.Context, lines []LineRequest, paymentMethod string) (*Bill, []byte, error) {
	if err := ValidateRequest(lines, paymentMethod); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	doc := &Bill{
		ID:            id.New(),
		BillNumber:    s.numbers.Next(),
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for i, line := range lines {
			ded, err := s.ledger.TryDeduct(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			doc.Items = append(doc.Items, LineItem{
				LineNo:      i + 1,
				ProductID:   ded.ProductID,
				Quantity:    ded.Quantity,
				Cost:        ded.Cost,
				ProductName: ded.Name,
			})
		}
		doc.RecalculateTotal()

		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}

		return s.incomeRepo.Add(ctx, income.Increment{
			Date:          income.DayOf(now),
			Amount:        doc.TotalCost,
			PaymentMethod: paymentMethod,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	// Re-read with product details resolved for the response payload.
	persisted, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return nil, nil, err
	}

	receipt, err := s.renderer.Render(ctx, persisted, time.Now())
	if err != nil {
		return nil, nil, apperror.NewPersistence(err).
			WithDetail("stage", "receipt")
	}

	logger.Info(ctx, "bill generated",
		"id", persisted.ID,
		"number", persisted.BillNumber,
		"total", persisted.TotalCost,
		"items", len(persisted.Items),
	)
	return persisted, receipt, nil
}

// GetByID retrieves a single bill with resolved product details.
func (s *Service) GetByID(ctx context.Context, billID id.ID) (*Bill, error) {
	return s.repo.GetByID(ctx, billID)
}

// List retrieves all bills newest-first.
func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	return s.repo.List(ctx)
}

// RenderReceipt renders the receipt for an existing bill. The document
// carries the render call time, not the bill's creation time.
func (s *Service) RenderReceipt(ctx context.Context, billID id.ID) ([]byte, error) {
	b, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(ctx, b, time.Now())
}
