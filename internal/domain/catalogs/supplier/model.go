// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Supplier represents a stock source, priced in USD.
type Supplier struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Supplier with a generated ID.
func New(name string) *Supplier {
	return &Supplier{
		ID:        id.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate implements self-validation.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(s.Name) > 150 {
		return apperror.NewValidation("name must be 150 characters or fewer").
			WithDetail("field", "name")
	}
	return nil
}
