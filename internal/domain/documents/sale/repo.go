package sale

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for sale persistence.
type Repository interface {
	// Create stores the sale header and all of its items.
	Create(ctx context.Context, s *Sale) error

	// GetByID returns a sale with its items, or nil when absent.
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)

	// List returns sales with items, newest first.
	List(ctx context.Context) ([]Sale, error)
}
