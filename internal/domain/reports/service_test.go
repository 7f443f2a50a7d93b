package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
)

type fakeReportRepo struct {
	opening      types.Money
	cashbookRows []CashbookRow
	stockLines   []StockLine
	summary      *SalesSummary
	ledgerRows   []LedgerRow
	lotLines     []LotLine
	gotRate      types.Money
	gotFrom      time.Time
	gotTo        time.Time
}

func (f *fakeReportRepo) ClientBalances(_ context.Context) ([]ClientBalance, error) {
	return nil, nil
}

func (f *fakeReportRepo) ClientBalance(_ context.Context, _ id.ID) (*ClientBalance, error) {
	return nil, nil
}

func (f *fakeReportRepo) SupplierBalances(_ context.Context, rate types.Money) ([]SupplierBalance, error) {
	f.gotRate = rate
	return nil, nil
}

func (f *fakeReportRepo) SupplierBalance(_ context.Context, _ id.ID, rate types.Money) (*SupplierBalance, error) {
	f.gotRate = rate
	return nil, nil
}

func (f *fakeReportRepo) CashbookOpening(_ context.Context, _ time.Time) (types.Money, error) {
	return f.opening, nil
}

func (f *fakeReportRepo) CashbookRows(_ context.Context, _ time.Time) ([]CashbookRow, error) {
	return f.cashbookRows, nil
}

func (f *fakeReportRepo) StockLines(_ context.Context) ([]StockLine, error) {
	return f.stockLines, nil
}

func (f *fakeReportRepo) LotLines(_ context.Context, from, to time.Time) ([]LotLine, error) {
	f.gotFrom, f.gotTo = from, to
	return f.lotLines, nil
}

func (f *fakeReportRepo) SalesSummary(_ context.Context, _, _ time.Time) (*SalesSummary, error) {
	return f.summary, nil
}

func (f *fakeReportRepo) SupplierPurchases(_ context.Context, _ id.ID) ([]PurchaseHistoryRow, error) {
	return nil, nil
}

func (f *fakeReportRepo) ClientLedger(_ context.Context, _ id.ID) ([]LedgerRow, error) {
	return f.ledgerRows, nil
}

func TestCashbook(t *testing.T) {
	repo := &fakeReportRepo{
		opening: types.MustMoney("1500"),
		cashbookRows: []CashbookRow{
			{Description: "Payment received from Ahmed Trading", DebitAED: types.MustMoney("500")},
			{Description: "Payment paid to HK Wholesale", CreditAED: types.MustMoney("300")},
			{Description: "Expense for iPhone 13 128GB", CreditAED: types.MustMoney("50")},
		},
	}
	svc := NewService(repo, fx.MustNew(fx.DefaultRate))

	cb, err := svc.Cashbook(context.Background(), time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, cb.OpeningBalance.Equal(types.MustMoney("1500")))
	assert.True(t, cb.TotalDebitAED.Equal(types.MustMoney("500")))
	assert.True(t, cb.TotalCreditAED.Equal(types.MustMoney("350")))
	// 1500 + 500 - 350
	assert.True(t, cb.ClosingBalance.Equal(types.MustMoney("1650")),
		"closing = %s", cb.ClosingBalance)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), cb.Date)
}

func TestCashbook_EmptyDay(t *testing.T) {
	repo := &fakeReportRepo{opening: types.MustMoney("1500")}
	svc := NewService(repo, fx.MustNew(fx.DefaultRate))

	cb, err := svc.Cashbook(context.Background(), time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Empty(t, cb.Rows)
	assert.True(t, cb.ClosingBalance.Equal(cb.OpeningBalance))
}

func TestStockLines_Valuation(t *testing.T) {
	repo := &fakeReportRepo{
		stockLines: []StockLine{
			{ModelName: "iPhone 13 128GB", QuantityRemaining: 6, AvgCostAED: types.MustMoney("377.25")},
			{ModelName: "iPhone 14 256GB", QuantityRemaining: 0, AvgCostAED: types.MustMoney("744.50")},
		},
	}
	svc := NewService(repo, fx.MustNew(fx.DefaultRate))

	lines, err := svc.StockLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].StockValueAED.Equal(types.MustMoney("2263.50")),
		"value = %s", lines[0].StockValueAED)
	assert.True(t, lines[1].StockValueAED.IsZero())
}

func TestSalesSummary_Profit(t *testing.T) {
	repo := &fakeReportRepo{
		summary: &SalesSummary{
			SalesCount:    3,
			UnitsSold:     7,
			TotalSalesAED: types.MustMoney("3150"),
			TotalCostAED:  types.MustMoney("2640.75"),
		},
	}
	svc := NewService(repo, fx.MustNew(fx.DefaultRate))

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	summary, err := svc.SalesSummary(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, summary.ProfitAED.Equal(types.MustMoney("509.25")),
		"profit = %s", summary.ProfitAED)
	assert.Equal(t, from, summary.From)
	assert.Equal(t, to, summary.To)
}

func TestClientLedger_RunningBalance(t *testing.T) {
	repo := &fakeReportRepo{
		ledgerRows: []LedgerRow{
			{Description: "Sale", CreditAED: types.MustMoney("1800")},
			{Description: "Payment received", DebitAED: types.MustMoney("1000")},
			{Description: "Sale", CreditAED: types.MustMoney("450")},
		},
	}
	svc := NewService(repo, fx.MustNew(fx.DefaultRate))

	rows, err := svc.ClientLedger(context.Background(), id.New())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.True(t, rows[0].RunningBalance.Equal(types.MustMoney("1800")))
	assert.True(t, rows[1].RunningBalance.Equal(types.MustMoney("800")))
	assert.True(t, rows[2].RunningBalance.Equal(types.MustMoney("1250")))
}

func TestSupplierBalances_PassesRate(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewService(repo, fx.MustNew("3.70"))

	_, err := svc.SupplierBalances(context.Background())
	require.NoError(t, err)
	assert.True(t, repo.gotRate.Equal(types.MustMoney("3.70")))
}

func TestLotLines_InclusiveRange(t *testing.T) {
	repo := &fakeReportRepo{
		lotLines: []LotLine{{ModelName: "iPhone 15", Quantity: 10}},
	}
	svc := NewService(repo, fx.MustNew(fx.DefaultRate))

	from := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	lines, err := svc.LotLines(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// bounds are normalized to whole days, upper bound exclusive
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), repo.gotTo)
}
