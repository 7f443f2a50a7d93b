// Package phonemodel provides the phone model catalog.
// A model ("iPhone 13 128GB", ...) is the unit of inventory tracking: one
// weighted-average cost position exists per model.
package phonemodel

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// PhoneModel represents a tradable phone model.
type PhoneModel struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"model_name" json:"modelName"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new PhoneModel with a generated ID.
func New(name string) *PhoneModel {
	return &PhoneModel{
		ID:        id.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate implements self-validation.
func (m *PhoneModel) Validate(ctx context.Context) error {
	if m.Name == "" {
		return apperror.NewValidation("model name is required").
			WithDetail("field", "modelName")
	}
	if len(m.Name) > 150 {
		return apperror.NewValidation("model name must be 150 characters or fewer").
			WithDetail("field", "modelName")
	}
	return nil
}
