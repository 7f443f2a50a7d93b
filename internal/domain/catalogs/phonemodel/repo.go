package phonemodel

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for PhoneModel persistence.
// Model names are unique; Create must surface a duplicate-entry error when
// the uniqueness constraint is violated.
type Repository interface {
	Create(ctx context.Context, m *PhoneModel) error
	GetByID(ctx context.Context, modelID id.ID) (*PhoneModel, error)
	GetByIDs(ctx context.Context, modelIDs []id.ID) (map[id.ID]PhoneModel, error)
	List(ctx context.Context) ([]PhoneModel, error)
}
