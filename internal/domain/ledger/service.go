package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/tx"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/audit"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/supplier"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// ExpensesAccountName is the single account all per-model expenses are
// credited against.
const ExpensesAccountName = "Expenses"

// Service posts ledger entries. Document services call EnsureAccount and
// Post inside their own transactions; the payment and expense operations
// here open transactions themselves.
type Service struct {
	repo      Repository
	txManager tx.Manager
	converter *fx.Converter
	clients   client.Repository
	suppliers supplier.Repository
	models    phonemodel.Repository
	stock     *inventory.Service
	recorder  audit.Recorder
}

// NewService creates a new ledger service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	converter *fx.Converter,
	clients client.Repository,
	suppliers supplier.Repository,
	models phonemodel.Repository,
	stock *inventory.Service,
	recorder audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		converter: converter,
		clients:   clients,
		suppliers: suppliers,
		models:    models,
		stock:     stock,
		recorder:  recorder,
	}
}

// EnsureAccount resolves or creates the account for (name, type).
func (s *Service) EnsureAccount(ctx context.Context, name string, accountType AccountType) (id.ID, error) {
	return s.repo.EnsureAccount(ctx, name, accountType)
}

// Post validates and inserts one entry. Callers are responsible for the
// surrounding transaction.
func (s *Service) Post(ctx context.Context, e *Entry) error {
	if id.IsNil(e.ID) {
		e.ID = id.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Insert(ctx, e)
}

// ReceivedInput describes money received from a client.
type ReceivedInput struct {
	ClientID    id.ID
	AmountAED   types.Money
	Date        time.Time
	Description string
}

// RecordReceived posts a debit on the client's account for money the
// client handed over. Receiving reduces what the client owes, since the
// client balance is computed as sales minus debits.
func (s *Service) RecordReceived(ctx context.Context, input ReceivedInput) (id.ID, error) {
	if !input.AmountAED.IsPositive() {
		return id.Nil(), apperror.NewValidation("amount must be positive").
			WithDetail("amount", input.AmountAED)
	}

	c, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return id.Nil(), err
	}
	if c == nil {
		return id.Nil(), apperror.NewNotFound("client", input.ClientID)
	}

	entry := &Entry{
		ID:            id.New(),
		Description:   input.Description,
		Date:          input.Date,
		DebitAED:      input.AmountAED,
		ReferenceType: RefReceived,
		ReferenceID:   input.ClientID,
	}
	if entry.Description == "" {
		entry.Description = fmt.Sprintf("Payment received from %s", c.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		accountID, err := s.repo.EnsureAccount(ctx, c.Name, AccountClient)
		if err != nil {
			return err
		}
		entry.AccountID = accountID
		if err := s.Post(ctx, entry); err != nil {
			return err
		}
		audit.Record(s.recorder, ctx, audit.ActionCreate, "ledger_entry", entry.ID, entry)
		return nil
	})
	if err != nil {
		return id.Nil(), wrapTxErr(err)
	}

	logger.Info(ctx, "payment received recorded",
		"client_id", input.ClientID, "amount_aed", input.AmountAED)
	return entry.ID, nil
}

// PaidInput describes money paid out to a supplier.
type PaidInput struct {
	SupplierID  id.ID
	AmountAED   types.Money
	AmountUSD   types.Money
	Date        time.Time
	Description string
}

// RecordPaid posts a debit on the supplier's account for money paid out.
// Supplier payments are tracked for the cashbook and payment history but
// deliberately do not reduce the supplier balance, which counts only
// purchases owed minus credits.
func (s *Service) RecordPaid(ctx context.Context, input PaidInput) (id.ID, error) {
	if !input.AmountAED.IsPositive() {
		return id.Nil(), apperror.NewValidation("amount must be positive").
			WithDetail("amount", input.AmountAED)
	}

	sup, err := s.suppliers.GetByID(ctx, input.SupplierID)
	if err != nil {
		return id.Nil(), err
	}
	if sup == nil {
		return id.Nil(), apperror.NewNotFound("supplier", input.SupplierID)
	}

	amountUSD := input.AmountUSD
	if amountUSD.IsZero() {
		amountUSD = s.converter.ToUSD(input.AmountAED)
	}

	entry := &Entry{
		ID:            id.New(),
		Description:   input.Description,
		Date:          input.Date,
		DebitAED:      input.AmountAED,
		DebitUSD:      amountUSD,
		ReferenceType: RefPaid,
		ReferenceID:   input.SupplierID,
	}
	if entry.Description == "" {
		entry.Description = fmt.Sprintf("Payment paid to %s", sup.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		accountID, err := s.repo.EnsureAccount(ctx, sup.Name, AccountSupplier)
		if err != nil {
			return err
		}
		entry.AccountID = accountID
		if err := s.Post(ctx, entry); err != nil {
			return err
		}
		audit.Record(s.recorder, ctx, audit.ActionCreate, "ledger_entry", entry.ID, entry)
		return nil
	})
	if err != nil {
		return id.Nil(), wrapTxErr(err)
	}

	logger.Info(ctx, "payment paid recorded",
		"supplier_id", input.SupplierID, "amount_aed", input.AmountAED)
	return entry.ID, nil
}

// ExpenseInput describes an extra cost attributed to a phone model.
type ExpenseInput struct {
	ModelID     id.ID
	AmountAED   types.Money
	Date        time.Time
	Description string
}

// AddExpense raises the model's weighted-average cost and credits the
// shared expenses account, both in one transaction. The entry's reference
// id points at the model the cost was absorbed into.
func (s *Service) AddExpense(ctx context.Context, input ExpenseInput) (id.ID, error) {
	if !input.AmountAED.IsPositive() {
		return id.Nil(), apperror.NewValidation("amount must be positive").
			WithDetail("amount", input.AmountAED)
	}

	m, err := s.models.GetByID(ctx, input.ModelID)
	if err != nil {
		return id.Nil(), err
	}
	if m == nil {
		return id.Nil(), apperror.NewNotFound("phone model", input.ModelID)
	}

	entry := &Entry{
		ID:            id.New(),
		Description:   input.Description,
		Date:          input.Date,
		CreditAED:     input.AmountAED,
		ReferenceType: RefExpense,
		ReferenceID:   input.ModelID,
	}
	if entry.Description == "" {
		entry.Description = fmt.Sprintf("Expense for %s", m.Name)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stock.ApplyExpense(ctx, input.ModelID, m.Name, input.AmountAED); err != nil {
			return err
		}
		accountID, err := s.repo.EnsureAccount(ctx, ExpensesAccountName, AccountExpense)
		if err != nil {
			return err
		}
		entry.AccountID = accountID
		if err := s.Post(ctx, entry); err != nil {
			return err
		}
		audit.Record(s.recorder, ctx, audit.ActionCreate, "ledger_entry", entry.ID, entry)
		return nil
	})
	if err != nil {
		return id.Nil(), wrapTxErr(err)
	}

	logger.Info(ctx, "expense recorded",
		"model_id", input.ModelID, "amount_aed", input.AmountAED)
	return entry.ID, nil
}

// EntriesForAccount returns the posting history of one account.
func (s *Service) EntriesForAccount(ctx context.Context, accountID id.ID) ([]Entry, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// wrapTxErr keeps application errors as-is and tags everything else as a
// transaction failure.
func wrapTxErr(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewTransaction(err)
}
