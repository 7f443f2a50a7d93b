package client

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	List(ctx context.Context) ([]Client, error)
}
