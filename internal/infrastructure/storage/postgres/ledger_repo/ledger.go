// Package ledger_repo provides the PostgreSQL implementation of the
// ledger repository.
package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const (
	accountsTable = "ledger_accounts"
	entriesTable  = "ledger_entries"
)

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureAccount upserts the account keyed by (name, type) and returns
// its id. The conflict clause makes concurrent callers converge on the
// same row without a read-then-insert race.
func (r *LedgerRepo) EnsureAccount(ctx context.Context, name string, accountType ledger.AccountType) (id.ID, error) {
	sql := `
		INSERT INTO ledger_accounts (id, account_name, account_type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_name, account_type)
		DO UPDATE SET account_name = EXCLUDED.account_name
		RETURNING id
	`

	var accountID id.ID
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, id.New(), name, accountType, time.Now().UTC()).Scan(&accountID)
	if err != nil {
		return id.Nil(), fmt.Errorf("ensure account: %w", err)
	}

	return accountID, nil
}

// GetAccount returns an account by name and type, or nil when absent.
func (r *LedgerRepo) GetAccount(ctx context.Context, name string, accountType ledger.AccountType) (*ledger.Account, error) {
	q := r.builder.Select("id", "account_name", "account_type", "created_at").
		From(accountsTable).
		Where(squirrel.Eq{"account_name": name, "account_type": accountType}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var acc ledger.Account
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &acc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &acc, nil
}

// Insert stores one entry.
func (r *LedgerRepo) Insert(ctx context.Context, e *ledger.Entry) error {
	q := r.builder.Insert(entriesTable).
		Columns(
			"id", "account_id", "entry_date", "description",
			"debit_aed", "credit_aed", "debit_usd", "credit_usd",
			"reference_type", "reference_id", "created_at",
		).
		Values(
			e.ID, e.AccountID, e.Date, e.Description,
			e.DebitAED, e.CreditAED, e.DebitUSD, e.CreditUSD,
			e.ReferenceType, nullableID(e.ReferenceID), e.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	return nil
}

// ListByAccount returns an account's entries ordered by date then
// creation time.
func (r *LedgerRepo) ListByAccount(ctx context.Context, accountID id.ID) ([]ledger.Entry, error) {
	q := r.entrySelect().
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("entry_date", "created_at")

	return r.selectEntries(ctx, q)
}

// ListByReference returns the entries produced by one business event.
func (r *LedgerRepo) ListByReference(ctx context.Context, refType ledger.ReferenceType, refID id.ID) ([]ledger.Entry, error) {
	q := r.entrySelect().
		Where(squirrel.Eq{"reference_type": refType, "reference_id": refID}).
		OrderBy("created_at")

	return r.selectEntries(ctx, q)
}

// ListByDateRange returns entries with entry_date inside [from, to).
func (r *LedgerRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]ledger.Entry, error) {
	q := r.entrySelect().
		Where(squirrel.GtOrEq{"entry_date": from}).
		Where(squirrel.Lt{"entry_date": to}).
		OrderBy("entry_date", "created_at")

	return r.selectEntries(ctx, q)
}

func (r *LedgerRepo) entrySelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "account_id", "entry_date", "description",
		"debit_aed", "credit_aed", "debit_usd", "credit_usd",
		"reference_type", "COALESCE(reference_id, '00000000-0000-0000-0000-000000000000') AS reference_id",
		"created_at",
	).From(entriesTable)
}

func (r *LedgerRepo) selectEntries(ctx context.Context, q squirrel.SelectBuilder) ([]ledger.Entry, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []ledger.Entry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	return entries, nil
}

// nullableID maps the nil id to SQL NULL.
func nullableID(v id.ID) any {
	if id.IsNil(v) {
		return nil
	}
	return v
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)
