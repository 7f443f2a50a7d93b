package stockintake

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for purchase lot persistence.
type Repository interface {
	// Create stores the lot header and all of its items.
	Create(ctx context.Context, lot *PurchaseLot) error

	// GetByID returns a lot with its items, or nil when absent.
	GetByID(ctx context.Context, lotID id.ID) (*PurchaseLot, error)

	// List returns lots with items, newest first.
	List(ctx context.Context) ([]PurchaseLot, error)
}
