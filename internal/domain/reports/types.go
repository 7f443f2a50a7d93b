// Package reports reconstructs balances and summaries from the ledger,
// the positions register and the documents. Nothing here is stored; every
// figure is recomputed from the underlying rows on request.
package reports

import (
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// ClientBalance is what a client still owes: the sum of their sale
// credits minus every debit posted on their account.
type ClientBalance struct {
	ClientID      id.ID       `db:"client_id" json:"clientId"`
	Name          string      `db:"name" json:"name"`
	ClientType    string      `db:"client_type" json:"clientType"`
	TotalSalesAED types.Money `db:"total_sales_aed" json:"totalSalesAed"`
	TotalPaidAED  types.Money `db:"total_paid_aed" json:"totalPaidAed"`
	BalanceAED    types.Money `db:"balance_aed" json:"balanceAed"`
}

// SupplierBalance is what is owed to a supplier: the AED value of their
// purchase lots minus credits posted on their account. Payments recorded
// as debits show in history but do not reduce this figure.
type SupplierBalance struct {
	SupplierID        id.ID       `db:"supplier_id" json:"supplierId"`
	Name              string      `db:"name" json:"name"`
	TotalPurchasesUSD types.Money `db:"total_purchases_usd" json:"totalPurchasesUsd"`
	TotalPurchasesAED types.Money `db:"total_purchases_aed" json:"totalPurchasesAed"`
	TotalCreditAED    types.Money `db:"total_credit_aed" json:"totalCreditAed"`
	BalanceAED        types.Money `db:"balance_aed" json:"balanceAed"`
}

// CashbookRow is one cash movement on the requested day. Received money
// lands in the debit column; payments out and expenses land in credit.
type CashbookRow struct {
	EntryID       id.ID       `db:"entry_id" json:"entryId"`
	Date          time.Time   `db:"entry_date" json:"date"`
	Description   string      `db:"description" json:"description"`
	ReferenceType string      `db:"reference_type" json:"referenceType"`
	DebitAED      types.Money `db:"debit_aed" json:"debitAed"`
	CreditAED     types.Money `db:"credit_aed" json:"creditAed"`
}

// Cashbook is the daily cash report: the balance carried in from all
// prior days, the day's movements, and the resulting closing balance.
type Cashbook struct {
	Date           time.Time   `json:"date"`
	OpeningBalance types.Money `json:"openingBalance"`
	Rows           []CashbookRow `json:"rows"`
	TotalDebitAED  types.Money `json:"totalDebitAed"`
	TotalCreditAED types.Money `json:"totalCreditAed"`
	ClosingBalance types.Money `json:"closingBalance"`
}

// StockLine is one model's current position with its valuation.
type StockLine struct {
	ModelID           id.ID       `db:"model_id" json:"modelId"`
	ModelName         string      `db:"model_name" json:"modelName"`
	QuantityRemaining int64       `db:"quantity_remaining" json:"quantityRemaining"`
	AvgCostAED        types.Money `db:"avg_cost_aed" json:"avgCostAed"`
	AvgCostUSD        types.Money `db:"avg_cost_usd" json:"avgCostUsd"`
	LastCostAED       types.Money `db:"last_cost_aed" json:"lastCostAed"`
	StockValueAED     types.Money `db:"-" json:"stockValueAed"`
}

// SalesSummary aggregates sales over a period. Cost comes from the unit
// cost snapshots on the sale items, so the profit is the margin at the
// moment each sale happened.
type SalesSummary struct {
	From          time.Time   `json:"from"`
	To            time.Time   `json:"to"`
	SalesCount    int64       `db:"sales_count" json:"salesCount"`
	UnitsSold     int64       `db:"units_sold" json:"unitsSold"`
	TotalSalesAED types.Money `db:"total_sales_aed" json:"totalSalesAed"`
	TotalCostAED  types.Money `db:"total_cost_aed" json:"totalCostAed"`
	ProfitAED     types.Money `db:"-" json:"profitAed"`
}

// PurchaseHistoryRow is one lot in a supplier's purchase history.
type PurchaseHistoryRow struct {
	LotID         id.ID       `db:"lot_id" json:"lotId"`
	Date          time.Time   `db:"lot_date" json:"date"`
	TotalUSD      types.Money `db:"total_usd" json:"totalUsd"`
	TotalAED      types.Money `db:"total_aed" json:"totalAed"`
	AmountPaidAED types.Money `db:"amount_paid_aed" json:"amountPaidAed"`
	UnitCount     int64       `db:"unit_count" json:"unitCount"`
}

// LotLine is one purchase lot item flattened for the stock page: the
// lot's date and supplier joined onto the model line.
type LotLine struct {
	LotID        id.ID       `db:"lot_id" json:"lotId"`
	Date         time.Time   `db:"lot_date" json:"date"`
	SupplierName string      `db:"supplier_name" json:"supplierName"`
	ModelName    string      `db:"model_name" json:"modelName"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	UnitPriceUSD types.Money `db:"unit_price_usd" json:"unitPriceUsd"`
	UnitCostAED  types.Money `db:"unit_cost_aed" json:"unitCostAed"`
}

// LedgerRow is one entry in an account statement, with a running balance
// filled in by the service.
type LedgerRow struct {
	EntryID        id.ID       `db:"entry_id" json:"entryId"`
	Date           time.Time   `db:"entry_date" json:"date"`
	Description    string      `db:"description" json:"description"`
	ReferenceType  string      `db:"reference_type" json:"referenceType"`
	DebitAED       types.Money `db:"debit_aed" json:"debitAed"`
	CreditAED      types.Money `db:"credit_aed" json:"creditAed"`
	RunningBalance types.Money `db:"-" json:"runningBalance"`
}
