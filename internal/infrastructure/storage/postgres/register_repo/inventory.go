// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const positionsTable = "inventory_positions"

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewInventoryRepo creates a new inventory position repository.
func NewInventoryRepo(txManager *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the position for a model, or nil when none exists.
func (r *InventoryRepo) Get(ctx context.Context, modelID id.ID) (*inventory.Position, error) {
	q := r.builder.Select(
		"model_id", "quantity_remaining",
		"avg_cost_aed", "avg_cost_usd", "last_cost_aed", "updated_at",
	).From(positionsTable).
		Where(squirrel.Eq{"model_id": modelID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var pos inventory.Position
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &pos, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}

	return &pos, nil
}

// GetForUpdate returns the position with a pessimistic lock.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, modelID id.ID) (*inventory.Position, error) {
	sql := `
		SELECT model_id, quantity_remaining,
		       avg_cost_aed, avg_cost_usd, last_cost_aed, updated_at
		FROM inventory_positions
		WHERE model_id = $1
		FOR UPDATE
	`

	var pos inventory.Position
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &pos, sql, modelID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position for update: %w", err)
	}

	return &pos, nil
}

// Save upserts the position keyed by model id.
func (r *InventoryRepo) Save(ctx context.Context, p *inventory.Position) error {
	q := r.builder.Insert(positionsTable).
		Columns("model_id", "quantity_remaining", "avg_cost_aed", "avg_cost_usd", "last_cost_aed", "updated_at").
		Values(p.ModelID, p.QuantityRemaining, p.AvgCostAED, p.AvgCostUSD, p.LastCostAED, p.UpdatedAt).
		Suffix(`ON CONFLICT (model_id) DO UPDATE SET
			quantity_remaining = EXCLUDED.quantity_remaining,
			avg_cost_aed = EXCLUDED.avg_cost_aed,
			avg_cost_usd = EXCLUDED.avg_cost_usd,
			last_cost_aed = EXCLUDED.last_cost_aed,
			updated_at = EXCLUDED.updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}

	return nil
}

// Consume decrements quantity_remaining, guarded so the row never goes
// negative. A zero rows-affected result means the stock was insufficient
// (or the position absent) at execution time.
func (r *InventoryRepo) Consume(ctx context.Context, modelID id.ID, qty int64) (bool, error) {
	sql := `
		UPDATE inventory_positions
		SET quantity_remaining = quantity_remaining - $2,
		    updated_at = now()
		WHERE model_id = $1 AND quantity_remaining >= $2
	`

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, modelID, qty)
	if err != nil {
		return false, fmt.Errorf("consume position: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// List returns all positions ordered by model id.
func (r *InventoryRepo) List(ctx context.Context) ([]inventory.Position, error) {
	q := r.builder.Select(
		"model_id", "quantity_remaining",
		"avg_cost_aed", "avg_cost_usd", "last_cost_aed", "updated_at",
	).From(positionsTable).
		OrderBy("model_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var positions []inventory.Position
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &positions, sql, args...); err != nil {
		return nil, fmt.Errorf("select positions: %w", err)
	}

	return positions, nil
}

// Ensure interface compliance.
var _ inventory.Repository = (*InventoryRepo)(nil)
