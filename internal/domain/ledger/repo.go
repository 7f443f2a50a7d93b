package ledger

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Repository defines the interface for account and entry persistence.
type Repository interface {
	// EnsureAccount returns the id of the account with the given name and
	// type, creating it when it does not exist yet. The upsert is atomic
	// so concurrent postings agree on a single account row.
	EnsureAccount(ctx context.Context, name string, accountType AccountType) (id.ID, error)

	// GetAccount returns an account by name and type, or nil when absent.
	GetAccount(ctx context.Context, name string, accountType AccountType) (*Account, error)

	// Insert stores one entry.
	Insert(ctx context.Context, e *Entry) error

	// ListByAccount returns an account's entries ordered by date then
	// creation time.
	ListByAccount(ctx context.Context, accountID id.ID) ([]Entry, error)

	// ListByReference returns the entries produced by one business event.
	ListByReference(ctx context.Context, refType ReferenceType, refID id.ID) ([]Entry, error)

	// ListByDateRange returns entries with entry_date inside [from, to).
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Entry, error)
}
