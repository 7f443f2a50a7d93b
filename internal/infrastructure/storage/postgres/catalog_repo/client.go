package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const clientsTable = "clients"

// ClientRepo implements client.Repository.
type ClientRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new client.
func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	q := r.builder.Insert(clientsTable).
		Columns("id", "name", "client_type", "created_at").
		Values(c.ID, c.Name, c.Type, c.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}

	return nil
}

// GetByID returns a client by id, or nil when absent.
func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	q := r.builder.Select("id", "name", "client_type", "created_at").
		From(clientsTable).
		Where(squirrel.Eq{"id": clientID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c client.Client
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	return &c, nil
}

// List returns all clients ordered by name.
func (r *ClientRepo) List(ctx context.Context) ([]client.Client, error) {
	q := r.builder.Select("id", "name", "client_type", "created_at").
		From(clientsTable).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var clients []client.Client
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &clients, sql, args...); err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}

	return clients, nil
}

// Ensure interface compliance.
var _ client.Repository = (*ClientRepo)(nil)
