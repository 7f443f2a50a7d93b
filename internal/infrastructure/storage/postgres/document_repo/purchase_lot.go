// Package document_repo provides PostgreSQL implementations for document
// repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/stockintake"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const (
	purchaseLotsTable     = "purchase_lots"
	purchaseLotItemsTable = "purchase_lot_items"
)

// PurchaseLotRepo implements stockintake.Repository.
type PurchaseLotRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewPurchaseLotRepo creates a new purchase lot repository.
func NewPurchaseLotRepo(txManager *postgres.TxManager) *PurchaseLotRepo {
	return &PurchaseLotRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores the lot header and all of its items.
func (r *PurchaseLotRepo) Create(ctx context.Context, lot *stockintake.PurchaseLot) error {
	querier := r.txManager.GetQuerier(ctx)

	headQ := r.builder.Insert(purchaseLotsTable).
		Columns(
			"id", "supplier_id", "lot_date",
			"total_usd", "total_aed", "fedex_usd", "local_aed", "amount_paid_aed",
			"created_at",
		).
		Values(
			lot.ID, nullableID(lot.SupplierID), lot.Date,
			lot.TotalUSD, lot.TotalAED, lot.FedexUSD, lot.LocalAED, lot.AmountPaidAED,
			lot.CreatedAt,
		)

	sql, args, err := headQ.ToSql()
	if err != nil {
		return fmt.Errorf("build lot insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}

	itemQ := r.builder.Insert(purchaseLotItemsTable).
		Columns("id", "lot_id", "model_id", "quantity", "unit_price_usd", "unit_cost_aed")
	for _, item := range lot.Items {
		itemQ = itemQ.Values(item.ID, item.LotID, item.ModelID, item.Quantity, item.UnitPriceUSD, item.UnitCostAED)
	}

	sql, args, err = itemQ.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lot items: %w", err)
	}

	return nil
}

// GetByID returns a lot with its items, or nil when absent.
func (r *PurchaseLotRepo) GetByID(ctx context.Context, lotID id.ID) (*stockintake.PurchaseLot, error) {
	q := r.lotSelect().Where(squirrel.Eq{"id": lotID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lot stockintake.PurchaseLot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &lot, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}

	items, err := r.loadItems(ctx, []id.ID{lot.ID})
	if err != nil {
		return nil, err
	}
	lot.Items = items[lot.ID]

	return &lot, nil
}

// List returns lots with items, newest first.
func (r *PurchaseLotRepo) List(ctx context.Context) ([]stockintake.PurchaseLot, error) {
	q := r.lotSelect().OrderBy("lot_date DESC", "created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lots []stockintake.PurchaseLot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lots, sql, args...); err != nil {
		return nil, fmt.Errorf("select lots: %w", err)
	}
	if len(lots) == 0 {
		return lots, nil
	}

	ids := make([]id.ID, 0, len(lots))
	for _, lot := range lots {
		ids = append(ids, lot.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lots {
		lots[i].Items = items[lots[i].ID]
	}

	return lots, nil
}

func (r *PurchaseLotRepo) lotSelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "COALESCE(supplier_id, '00000000-0000-0000-0000-000000000000') AS supplier_id", "lot_date",
		"total_usd", "total_aed", "fedex_usd", "local_aed", "amount_paid_aed",
		"created_at",
	).From(purchaseLotsTable)
}

// nullableID maps the nil id to SQL NULL.
func nullableID(v id.ID) any {
	if id.IsNil(v) {
		return nil
	}
	return v
}

func (r *PurchaseLotRepo) loadItems(ctx context.Context, lotIDs []id.ID) (map[id.ID][]stockintake.PurchaseLotItem, error) {
	q := r.builder.Select("id", "lot_id", "model_id", "quantity", "unit_price_usd", "unit_cost_aed").
		From(purchaseLotItemsTable).
		Where(squirrel.Eq{"lot_id": lotIDs}).
		OrderBy("lot_id", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []stockintake.PurchaseLotItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select lot items: %w", err)
	}

	out := make(map[id.ID][]stockintake.PurchaseLotItem, len(lotIDs))
	for _, item := range items {
		out[item.LotID] = append(out[item.LotID], item)
	}
	return out, nil
}

// Ensure interface compliance.
var _ stockintake.Repository = (*PurchaseLotRepo)(nil)
