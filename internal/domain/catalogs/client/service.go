package client

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// Service provides business logic for the Client catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Client service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new client, returning its id.
func (s *Service) Create(ctx context.Context, name string, clientType Type) (id.ID, error) {
	if clientType == "" {
		clientType = TypeRegular
	}

	c := New(name, clientType)
	if err := c.Validate(ctx); err != nil {
		return id.Nil(), err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return id.Nil(), err
	}

	logger.Info(ctx, "client created", "id", c.ID, "name", c.Name)
	return c.ID, nil
}

// GetByID retrieves a client.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// List retrieves all clients ordered by name.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}
