package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Iqbalshah786/inventory/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the DDL on startup. Every statement is written to
// be idempotent, so running it against an existing database is a no-op.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info(ctx, "database schema ensured")
	return nil
}
