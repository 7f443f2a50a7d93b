// Package auth_repo provides the PostgreSQL implementation of the admin
// repository.
package auth_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/auth"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const adminsTable = "admins"

// AdminRepo implements auth.Repository.
type AdminRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewAdminRepo creates a new admin repository.
func NewAdminRepo(txManager *postgres.TxManager) *AdminRepo {
	return &AdminRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new admin.
func (r *AdminRepo) Create(ctx context.Context, a *auth.Admin) error {
	q := r.builder.Insert(adminsTable).
		Columns("id", "username", "password_hash", "created_at", "updated_at").
		Values(a.ID, a.Username, a.PasswordHash, a.CreatedAt, a.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}

	return nil
}

// GetByUsername returns an admin by username, or nil when absent.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*auth.Admin, error) {
	q := r.adminSelect().Where(squirrel.Eq{"username": username}).Limit(1)
	return r.getOne(ctx, q)
}

// GetByID returns an admin by id, or nil when absent.
func (r *AdminRepo) GetByID(ctx context.Context, adminID id.ID) (*auth.Admin, error) {
	q := r.adminSelect().Where(squirrel.Eq{"id": adminID}).Limit(1)
	return r.getOne(ctx, q)
}

// UpdateUsername changes the login name.
func (r *AdminRepo) UpdateUsername(ctx context.Context, adminID id.ID, username string) error {
	return r.update(ctx, adminID, "username", username)
}

// UpdatePassword stores a new password hash.
func (r *AdminRepo) UpdatePassword(ctx context.Context, adminID id.ID, passwordHash string) error {
	return r.update(ctx, adminID, "password_hash", passwordHash)
}

// Count returns the number of admin accounts.
func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	sql := "SELECT COUNT(*) FROM admins"

	var count int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}

	return count, nil
}

func (r *AdminRepo) adminSelect() squirrel.SelectBuilder {
	return r.builder.Select("id", "username", "password_hash", "created_at", "updated_at").
		From(adminsTable)
}

func (r *AdminRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*auth.Admin, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a auth.Admin
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}

	return &a, nil
}

func (r *AdminRepo) update(ctx context.Context, adminID id.ID, column string, value any) error {
	q := r.builder.Update(adminsTable).
		Set(column, value).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": adminID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	return nil
}

// Ensure interface compliance.
var _ auth.Repository = (*AdminRepo)(nil)
