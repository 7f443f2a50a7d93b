package phonemodel

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// Service provides business logic for the phone model catalog.
type Service struct {
	repo Repository
}

// NewService creates a new phone model service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new model, returning its id.
func (s *Service) Create(ctx context.Context, name string) (id.ID, error) {
	m := New(name)
	if err := m.Validate(ctx); err != nil {
		return id.Nil(), err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return id.Nil(), err
	}

	logger.Info(ctx, "phone model created", "id", m.ID, "name", m.Name)
	return m.ID, nil
}

// GetByID retrieves a model.
func (s *Service) GetByID(ctx context.Context, modelID id.ID) (*PhoneModel, error) {
	return s.repo.GetByID(ctx, modelID)
}

// List retrieves all models ordered by name.
func (s *Service) List(ctx context.Context) ([]PhoneModel, error) {
	return s.repo.List(ctx)
}
