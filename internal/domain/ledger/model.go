// Package ledger implements the double-sided money book. Every financial
// event in the system becomes an Entry against an Account; balances and
// the cashbook are never stored, they are reconstructed from entries.
package ledger

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// AccountType classifies ledger accounts.
type AccountType string

const (
	AccountClient    AccountType = "client"
	AccountSupplier  AccountType = "supplier"
	AccountExpense   AccountType = "expense"
	AccountCash      AccountType = "cash"
	AccountInventory AccountType = "inventory"
)

// ReferenceType tags an entry with the business event that produced it.
type ReferenceType string

const (
	RefPurchase ReferenceType = "purchase"
	RefSale     ReferenceType = "sale"
	RefPayment  ReferenceType = "payment"
	RefReceived ReferenceType = "received"
	RefPaid     ReferenceType = "paid"
	RefExpense  ReferenceType = "expense"
)

// Account is a named bucket entries are posted against. Accounts are
// created lazily on first posting, keyed by (name, type).
type Account struct {
	ID        id.ID       `db:"id" json:"id"`
	Name      string      `db:"account_name" json:"accountName"`
	Type      AccountType `db:"account_type" json:"accountType"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
}

// Entry is a single ledger posting. Exactly one of the debit/credit
// sides carries the AED amount; the USD columns mirror it when the
// source event was priced in USD.
type Entry struct {
	ID            id.ID         `db:"id" json:"id"`
	AccountID     id.ID         `db:"account_id" json:"accountId"`
	Date          time.Time     `db:"entry_date" json:"date"`
	Description   string        `db:"description" json:"description"`
	DebitAED      types.Money   `db:"debit_aed" json:"debitAed"`
	CreditAED     types.Money   `db:"credit_aed" json:"creditAed"`
	DebitUSD      types.Money   `db:"debit_usd" json:"debitUsd"`
	CreditUSD     types.Money   `db:"credit_usd" json:"creditUsd"`
	ReferenceType ReferenceType `db:"reference_type" json:"referenceType"`
	ReferenceID   id.ID         `db:"reference_id" json:"referenceId"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
}

// Validate checks the entry carries exactly one non-zero AED side.
func (e *Entry) Validate(ctx context.Context) error {
	if id.IsNil(e.AccountID) {
		return apperror.NewValidation("entry requires an account")
	}
	debit := e.DebitAED.IsPositive()
	credit := e.CreditAED.IsPositive()
	if debit == credit {
		return apperror.NewValidation("entry must carry exactly one of debit or credit").
			WithDetail("debit_aed", e.DebitAED).
			WithDetail("credit_aed", e.CreditAED)
	}
	if e.DebitAED.IsNegative() || e.CreditAED.IsNegative() ||
		e.DebitUSD.IsNegative() || e.CreditUSD.IsNegative() {
		return apperror.NewValidation("entry amounts must not be negative")
	}
	if e.ReferenceType == "" {
		return apperror.NewValidation("entry requires a reference type")
	}
	return nil
}
