package reports

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// Repository defines the read-side queries the reports are built from.
// The AED-per-USD rate is passed into queries that value USD lots so the
// database never holds the rate itself.
type Repository interface {
	ClientBalances(ctx context.Context) ([]ClientBalance, error)
	ClientBalance(ctx context.Context, clientID id.ID) (*ClientBalance, error)
	SupplierBalances(ctx context.Context, rate types.Money) ([]SupplierBalance, error)
	SupplierBalance(ctx context.Context, supplierID id.ID, rate types.Money) (*SupplierBalance, error)

	// CashbookOpening returns the cash balance accumulated strictly
	// before the given day.
	CashbookOpening(ctx context.Context, day time.Time) (types.Money, error)

	// CashbookRows returns the day's cash movements in posting order.
	CashbookRows(ctx context.Context, day time.Time) ([]CashbookRow, error)

	StockLines(ctx context.Context) ([]StockLine, error)

	// LotLines returns flattened purchase lot items over [from, to).
	LotLines(ctx context.Context, from, to time.Time) ([]LotLine, error)

	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	SupplierPurchases(ctx context.Context, supplierID id.ID) ([]PurchaseHistoryRow, error)
	ClientLedger(ctx context.Context, clientID id.ID) ([]LedgerRow, error)
}
