package product

import (
	"context"

	"tillpoint/internal/core/id"
	"tillpoint/pkg/logger"
)

// Auditor records privileged catalog mutations.
// Implemented by postgres.AuditService.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service provides business operations for the product catalog.
type Service struct {
	repo    Repository
	auditor Auditor // optional
}

// NewService creates a new product service.
func NewService(repo Repository, auditor Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.audit(ctx, p.ID, "create", p)
	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// GetByID retrieves a single product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update applies a partial update to an existing product.
func (s *Service) Update(ctx context.Context, productID id.ID, patch Patch) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.audit(ctx, p.ID, "update", p)
	return p, nil
}

// Delete removes a product from the catalog. Bills keep their cost
// snapshots, so historical data is unaffected.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}

	s.audit(ctx, productID, "delete", nil)
	logger.Info(ctx, "product deleted", "id", productID)
	return nil
}

// List retrieves the full catalog.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// audit is best-effort: a failed audit write never fails the mutation.
func (s *Service) audit(ctx context.Context, entityID id.ID, action string, changes any) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.LogChange(ctx, "product", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_id", entityID, "action", action, "error", err)
	}
}
