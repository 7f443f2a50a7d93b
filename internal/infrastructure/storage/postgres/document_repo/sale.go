package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/sale"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
)

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores the sale header and all of its items.
func (r *SaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	querier := r.txManager.GetQuerier(ctx)

	headQ := r.builder.Insert(salesTable).
		Columns("id", "client_id", "sale_date", "total_aed", "amount_received_aed", "payment_type", "created_at").
		Values(s.ID, s.ClientID, s.Date, s.TotalAED, s.AmountReceivedAED, s.PaymentType, s.CreatedAt)

	sql, args, err := headQ.ToSql()
	if err != nil {
		return fmt.Errorf("build sale insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQ := r.builder.Insert(saleItemsTable).
		Columns("id", "sale_id", "model_id", "quantity", "unit_price_aed", "unit_cost_aed")
	for _, item := range s.Items {
		itemQ = itemQ.Values(item.ID, item.SaleID, item.ModelID, item.Quantity, item.UnitPriceAED, item.UnitCostAED)
	}

	sql, args, err = itemQ.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}

	return nil
}

// GetByID returns a sale with its items, or nil when absent.
func (r *SaleRepo) GetByID(ctx context.Context, saleID id.ID) (*sale.Sale, error) {
	q := r.saleSelect().Where(squirrel.Eq{"id": saleID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s sale.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	items, err := r.loadItems(ctx, []id.ID{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]

	return &s, nil
}

// List returns sales with items, newest first.
func (r *SaleRepo) List(ctx context.Context) ([]sale.Sale, error) {
	q := r.saleSelect().OrderBy("sale_date DESC", "created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sales []sale.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &sales, sql, args...); err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	if len(sales) == 0 {
		return sales, nil
	}

	ids := make([]id.ID, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items = items[sales[i].ID]
	}

	return sales, nil
}

func (r *SaleRepo) saleSelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "client_id", "sale_date", "total_aed", "amount_received_aed", "payment_type", "created_at",
	).From(salesTable)
}

func (r *SaleRepo) loadItems(ctx context.Context, saleIDs []id.ID) (map[id.ID][]sale.SaleItem, error) {
	q := r.builder.Select("id", "sale_id", "model_id", "quantity", "unit_price_aed", "unit_cost_aed").
		From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleIDs}).
		OrderBy("sale_id", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []sale.SaleItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select sale items: %w", err)
	}

	out := make(map[id.ID][]sale.SaleItem, len(saleIDs))
	for _, item := range items {
		out[item.SaleID] = append(out[item.SaleID], item)
	}
	return out, nil
}

// Ensure interface compliance.
var _ sale.Repository = (*SaleRepo)(nil)
