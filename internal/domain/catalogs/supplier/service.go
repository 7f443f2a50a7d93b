package supplier

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new supplier, returning its id.
func (s *Service) Create(ctx context.Context, name string) (id.ID, error) {
	sup := New(name)
	if err := sup.Validate(ctx); err != nil {
		return id.Nil(), err
	}

	if err := s.repo.Create(ctx, sup); err != nil {
		return id.Nil(), err
	}

	logger.Info(ctx, "supplier created", "id", sup.ID, "name", sup.Name)
	return sup.ID, nil
}

// GetByID retrieves a supplier.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

// List retrieves all suppliers ordered by name.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}
