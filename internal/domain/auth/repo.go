package auth

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for admin persistence.
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, adminID id.ID) (*Admin, error)
	UpdateUsername(ctx context.Context, adminID id.ID, username string) error
	UpdatePassword(ctx context.Context, adminID id.ID, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}
