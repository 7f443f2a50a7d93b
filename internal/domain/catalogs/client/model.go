// Package client provides the Client catalog.
// Clients are the buyers tracked by the ledger: regular clients buy on
// credit, the walk-in client represents anonymous cash sales.
package client

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Type defines the kind of client.
type Type string

const (
	// TypeRegular is a credit-tracked client.
	TypeRegular Type = "regular"
	// TypeWalkin represents anonymous cash sales.
	TypeWalkin Type = "walkin"
)

// Client represents a buyer.
type Client struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      Type      `db:"client_type" json:"clientType"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Client with a generated ID.
func New(name string, clientType Type) *Client {
	return &Client{
		ID:        id.New(),
		Name:      name,
		Type:      clientType,
		CreatedAt: time.Now().UTC(),
	}
}

// IsWalkin reports whether this is the walk-in cash client.
func (c *Client) IsWalkin() bool {
	return c.Type == TypeWalkin
}

// Validate implements self-validation.
func (c *Client) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(c.Name) > 150 {
		return apperror.NewValidation("name must be 150 characters or fewer").
			WithDetail("field", "name")
	}
	switch c.Type {
	case TypeRegular, TypeWalkin:
	default:
		return apperror.NewValidation("invalid client type").
			WithDetail("field", "clientType").
			WithDetail("value", string(c.Type))
	}
	return nil
}
