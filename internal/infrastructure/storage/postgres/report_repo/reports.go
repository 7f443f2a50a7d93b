// Package report_repo provides the PostgreSQL read-side queries behind
// the reports. Balances are never stored: every query here rebuilds its
// figures from ledger entries, documents and positions.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// Client accounts are linked by name: accounts are created lazily with
// the client's name when the first entry is posted.
const clientBalanceSQL = `
	SELECT c.id AS client_id,
	       c.name,
	       c.client_type,
	       COALESCE(s.total_sales, 0) AS total_sales_aed,
	       COALESCE(p.total_paid, 0) AS total_paid_aed,
	       COALESCE(s.total_sales, 0) - COALESCE(p.total_paid, 0) AS balance_aed
	FROM clients c
	LEFT JOIN (
		SELECT client_id, SUM(total_aed) AS total_sales
		FROM sales
		GROUP BY client_id
	) s ON s.client_id = c.id
	LEFT JOIN (
		SELECT a.account_name, SUM(e.debit_aed) AS total_paid
		FROM ledger_entries e
		JOIN ledger_accounts a ON a.id = e.account_id
		WHERE a.account_type = 'client'
		GROUP BY a.account_name
	) p ON p.account_name = c.name
`

// ClientBalances returns what every client owes.
func (r *ReportRepo) ClientBalances(ctx context.Context) ([]reports.ClientBalance, error) {
	sql := clientBalanceSQL + " ORDER BY c.name"

	var balances []reports.ClientBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &balances, sql); err != nil {
		return nil, fmt.Errorf("select client balances: %w", err)
	}

	return balances, nil
}

// ClientBalance returns one client's balance, or nil when the client
// does not exist.
func (r *ReportRepo) ClientBalance(ctx context.Context, clientID id.ID) (*reports.ClientBalance, error) {
	sql := clientBalanceSQL + " WHERE c.id = $1"

	var balance reports.ClientBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &balance, sql, clientID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client balance: %w", err)
	}

	return &balance, nil
}

// Supplier lots are valued in USD; the caller passes the AED rate so the
// owed figure always reflects the currently configured rate. Credits on
// the supplier account reduce the balance; debits (payments paid) are
// history only.
const supplierBalanceSQL = `
	SELECT s.id AS supplier_id,
	       s.name,
	       COALESCE(l.total_usd, 0) AS total_purchases_usd,
	       COALESCE(ROUND(l.total_usd * $1, 2), 0) AS total_purchases_aed,
	       COALESCE(cr.total_credit, 0) AS total_credit_aed,
	       COALESCE(ROUND(l.total_usd * $1, 2), 0) - COALESCE(cr.total_credit, 0) AS balance_aed
	FROM suppliers s
	LEFT JOIN (
		SELECT supplier_id, SUM(total_usd) AS total_usd
		FROM purchase_lots
		GROUP BY supplier_id
	) l ON l.supplier_id = s.id
	LEFT JOIN (
		SELECT a.account_name, SUM(e.credit_aed) AS total_credit
		FROM ledger_entries e
		JOIN ledger_accounts a ON a.id = e.account_id
		WHERE a.account_type = 'supplier'
		GROUP BY a.account_name
	) cr ON cr.account_name = s.name
`

// SupplierBalances returns what is owed to every supplier.
func (r *ReportRepo) SupplierBalances(ctx context.Context, rate types.Money) ([]reports.SupplierBalance, error) {
	sql := supplierBalanceSQL + " ORDER BY s.name"

	var balances []reports.SupplierBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &balances, sql, rate); err != nil {
		return nil, fmt.Errorf("select supplier balances: %w", err)
	}

	return balances, nil
}

// SupplierBalance returns one supplier's balance, or nil when the
// supplier does not exist.
func (r *ReportRepo) SupplierBalance(ctx context.Context, supplierID id.ID, rate types.Money) (*reports.SupplierBalance, error) {
	sql := supplierBalanceSQL + " WHERE s.id = $2"

	var balance reports.SupplierBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &balance, sql, rate, supplierID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier balance: %w", err)
	}

	return &balance, nil
}

// CashbookOpening sums all cash movements strictly before the day:
// money received adds, payments out and expenses subtract.
func (r *ReportRepo) CashbookOpening(ctx context.Context, day time.Time) (types.Money, error) {
	sql := `
		SELECT COALESCE(SUM(
			CASE reference_type
				WHEN 'received' THEN debit_aed
				WHEN 'paid' THEN -debit_aed
				WHEN 'expense' THEN -credit_aed
			END
		), 0)
		FROM ledger_entries
		WHERE entry_date < $1
		  AND reference_type IN ('received', 'paid', 'expense')
	`

	var opening types.Money
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, day).Scan(&opening)
	if err != nil && err != pgx.ErrNoRows {
		return types.Zero(), fmt.Errorf("cashbook opening: %w", err)
	}

	return opening, nil
}

// CashbookRows returns the day's movements with received money in the
// debit column and payments out and expenses in the credit column.
func (r *ReportRepo) CashbookRows(ctx context.Context, day time.Time) ([]reports.CashbookRow, error) {
	sql := `
		SELECT e.id AS entry_id,
		       e.entry_date,
		       e.description,
		       e.reference_type,
		       CASE WHEN e.reference_type = 'received' THEN e.debit_aed ELSE 0 END AS debit_aed,
		       CASE e.reference_type
		           WHEN 'paid' THEN e.debit_aed
		           WHEN 'expense' THEN e.credit_aed
		           ELSE 0
		       END AS credit_aed
		FROM ledger_entries e
		WHERE e.entry_date >= $1 AND e.entry_date < $2
		  AND e.reference_type IN ('received', 'paid', 'expense')
		ORDER BY e.entry_date, e.created_at
	`

	var rows []reports.CashbookRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, day, day.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("select cashbook rows: %w", err)
	}

	return rows, nil
}

// StockLines returns every position joined with its model name.
func (r *ReportRepo) StockLines(ctx context.Context) ([]reports.StockLine, error) {
	sql := `
		SELECT p.model_id,
		       m.model_name,
		       p.quantity_remaining,
		       p.avg_cost_aed,
		       p.avg_cost_usd,
		       p.last_cost_aed
		FROM inventory_positions p
		JOIN phone_models m ON m.id = p.model_id
		ORDER BY m.model_name
	`

	var lines []reports.StockLine
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql); err != nil {
		return nil, fmt.Errorf("select stock lines: %w", err)
	}

	return lines, nil
}

// LotLines returns flattened purchase lot items over [from, to), newest
// lots first.
func (r *ReportRepo) LotLines(ctx context.Context, from, to time.Time) ([]reports.LotLine, error) {
	sql := `
		SELECT l.id AS lot_id,
		       l.lot_date,
		       COALESCE(s.name, '') AS supplier_name,
		       m.model_name,
		       i.quantity,
		       i.unit_price_usd,
		       i.unit_cost_aed
		FROM purchase_lot_items i
		JOIN purchase_lots l ON l.id = i.lot_id
		LEFT JOIN suppliers s ON s.id = l.supplier_id
		JOIN phone_models m ON m.id = i.model_id
		WHERE l.lot_date >= $1 AND l.lot_date < $2
		ORDER BY l.lot_date DESC, l.created_at DESC, m.model_name
	`

	var lines []reports.LotLine
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, from, to); err != nil {
		return nil, fmt.Errorf("select lot lines: %w", err)
	}

	return lines, nil
}

// SalesSummary aggregates sale items over [from, to). Cost uses the
// per-item unit cost snapshots.
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (*reports.SalesSummary, error) {
	sql := `
		SELECT COUNT(DISTINCT s.id) AS sales_count,
		       COALESCE(SUM(i.quantity), 0) AS units_sold,
		       COALESCE(SUM(i.quantity * i.unit_price_aed), 0) AS total_sales_aed,
		       COALESCE(SUM(i.quantity * i.unit_cost_aed), 0) AS total_cost_aed
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		WHERE s.sale_date >= $1 AND s.sale_date < $2
	`

	var summary reports.SalesSummary
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &summary, sql, from, to); err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	return &summary, nil
}

// SupplierPurchases returns a supplier's lot history, newest first.
func (r *ReportRepo) SupplierPurchases(ctx context.Context, supplierID id.ID) ([]reports.PurchaseHistoryRow, error) {
	sql := `
		SELECT l.id AS lot_id,
		       l.lot_date,
		       l.total_usd,
		       l.total_aed,
		       l.amount_paid_aed,
		       COALESCE(SUM(i.quantity), 0) AS unit_count
		FROM purchase_lots l
		LEFT JOIN purchase_lot_items i ON i.lot_id = l.id
		WHERE l.supplier_id = $1
		GROUP BY l.id, l.lot_date, l.total_usd, l.total_aed, l.amount_paid_aed
		ORDER BY l.lot_date DESC
	`

	var rows []reports.PurchaseHistoryRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, supplierID); err != nil {
		return nil, fmt.Errorf("select supplier purchases: %w", err)
	}

	return rows, nil
}

// ClientLedger returns every entry on the client's account in posting
// order.
func (r *ReportRepo) ClientLedger(ctx context.Context, clientID id.ID) ([]reports.LedgerRow, error) {
	sql := `
		SELECT e.id AS entry_id,
		       e.entry_date,
		       e.description,
		       e.reference_type,
		       e.debit_aed,
		       e.credit_aed
		FROM ledger_entries e
		JOIN ledger_accounts a ON a.id = e.account_id
		JOIN clients c ON c.name = a.account_name
		WHERE a.account_type = 'client' AND c.id = $1
		ORDER BY e.entry_date, e.created_at
	`

	var rows []reports.LedgerRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, clientID); err != nil {
		return nil, fmt.Errorf("select client ledger: %w", err)
	}

	return rows, nil
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
