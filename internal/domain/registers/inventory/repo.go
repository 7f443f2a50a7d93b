package inventory

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for position persistence.
type Repository interface {
	// Get returns the position for a model, or nil when none exists.
	Get(ctx context.Context, modelID id.ID) (*Position, error)

	// GetForUpdate returns the position locked for the current transaction,
	// or nil when none exists. Must be called inside a transaction.
	GetForUpdate(ctx context.Context, modelID id.ID) (*Position, error)

	// Save upserts the position keyed by model id.
	Save(ctx context.Context, p *Position) error

	// Consume atomically decrements quantity_remaining by qty, guarded by
	// a quantity_remaining >= qty condition. It reports whether a row was
	// updated; false means the stock was insufficient at commit time.
	Consume(ctx context.Context, modelID id.ID, qty int64) (bool, error)

	// List returns all positions.
	List(ctx context.Context) ([]Position, error)
}
