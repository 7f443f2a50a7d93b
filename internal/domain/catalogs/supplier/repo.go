package supplier

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
}
