package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
)

// Service assembles reports. The repository returns raw aggregates; the
// derived figures (closing balances, running balances, valuations) are
// computed here.
type Service struct {
	repo      Repository
	converter *fx.Converter
}

// NewService creates a new reports service.
func NewService(repo Repository, converter *fx.Converter) *Service {
	return &Service{repo: repo, converter: converter}
}

// ClientBalances returns every client with what they owe.
func (s *Service) ClientBalances(ctx context.Context) ([]ClientBalance, error) {
	return s.repo.ClientBalances(ctx)
}

// ClientBalance returns one client's balance.
func (s *Service) ClientBalance(ctx context.Context, clientID id.ID) (*ClientBalance, error) {
	b, err := s.repo.ClientBalance(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFound("client", clientID)
	}
	return b, nil
}

// SupplierBalances returns every supplier with what is owed to them,
// valuing USD lot totals at the configured rate.
func (s *Service) SupplierBalances(ctx context.Context) ([]SupplierBalance, error) {
	return s.repo.SupplierBalances(ctx, s.converter.Rate())
}

// SupplierBalance returns one supplier's balance.
func (s *Service) SupplierBalance(ctx context.Context, supplierID id.ID) (*SupplierBalance, error) {
	b, err := s.repo.SupplierBalance(ctx, supplierID, s.converter.Rate())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFound("supplier", supplierID)
	}
	return b, nil
}

// Cashbook reconstructs the cash position for one day: the opening
// balance carried in from all prior days, the day's movements, and
//
//	closing = opening + sum(debit) - sum(credit)
func (s *Service) Cashbook(ctx context.Context, day time.Time) (*Cashbook, error) {
	day = truncateToDay(day)

	opening, err := s.repo.CashbookOpening(ctx, day)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.CashbookRows(ctx, day)
	if err != nil {
		return nil, err
	}

	totalDebit := types.Zero()
	totalCredit := types.Zero()
	for _, r := range rows {
		totalDebit = totalDebit.Add(r.DebitAED)
		totalCredit = totalCredit.Add(r.CreditAED)
	}

	return &Cashbook{
		Date:           day,
		OpeningBalance: opening,
		Rows:           rows,
		TotalDebitAED:  totalDebit,
		TotalCreditAED: totalCredit,
		ClosingBalance: opening.Add(totalDebit).Sub(totalCredit),
	}, nil
}

// StockLines returns every position valued at its weighted-average cost.
func (s *Service) StockLines(ctx context.Context) ([]StockLine, error) {
	lines, err := s.repo.StockLines(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		qty := decimal.NewFromInt(lines[i].QuantityRemaining)
		lines[i].StockValueAED = lines[i].AvgCostAED.Mul(qty).Round(2)
	}
	return lines, nil
}

// LotLines returns purchase lot items over [from, to] inclusive of both
// days, newest lots first.
func (s *Service) LotLines(ctx context.Context, from, to time.Time) ([]LotLine, error) {
	from = truncateToDay(from)
	to = truncateToDay(to).AddDate(0, 0, 1)
	return s.repo.LotLines(ctx, from, to)
}

// SalesSummary aggregates sales over [from, to] inclusive of both days.
func (s *Service) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	from = truncateToDay(from)
	to = truncateToDay(to).AddDate(0, 0, 1)

	summary, err := s.repo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.From = from
	summary.To = to.AddDate(0, 0, -1)
	summary.ProfitAED = summary.TotalSalesAED.Sub(summary.TotalCostAED)
	return summary, nil
}

// SupplierPurchases returns a supplier's lot history, newest first.
func (s *Service) SupplierPurchases(ctx context.Context, supplierID id.ID) ([]PurchaseHistoryRow, error) {
	return s.repo.SupplierPurchases(ctx, supplierID)
}

// ClientLedger returns a client's account statement with a running
// balance, where credits (sales) increase what the client owes and
// debits (payments) reduce it.
func (s *Service) ClientLedger(ctx context.Context, clientID id.ID) ([]LedgerRow, error) {
	rows, err := s.repo.ClientLedger(ctx, clientID)
	if err != nil {
		return nil, err
	}

	balance := types.Zero()
	for i := range rows {
		balance = balance.Add(rows[i].CreditAED).Sub(rows[i].DebitAED)
		rows[i].RunningBalance = balance
	}
	return rows, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
