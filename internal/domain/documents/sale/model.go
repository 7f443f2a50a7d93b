// Package sale implements the sale workflow: units leave stock at their
// current weighted-average cost, the client's account is credited with
// the sale total, and walk-in sales settle in cash immediately.
package sale

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// PaymentType tells how a sale settles: walk-in clients pay cash on the
// spot, everyone else buys on credit.
type PaymentType string

// Payment types.
const (
	PaymentCash   PaymentType = "cash"
	PaymentCredit PaymentType = "credit"
)

// Sale is one sale document.
type Sale struct {
	ID                id.ID       `db:"id" json:"id"`
	ClientID          id.ID       `db:"client_id" json:"clientId"`
	Date              time.Time   `db:"sale_date" json:"date"`
	TotalAED          types.Money `db:"total_aed" json:"totalAed"`
	AmountReceivedAED types.Money `db:"amount_received_aed" json:"amountReceivedAed"`
	PaymentType       PaymentType `db:"payment_type" json:"paymentType"`
	CreatedAt         time.Time   `db:"created_at" json:"createdAt"`

	Items []SaleItem `db:"-" json:"items"`
}

// SaleItem is one model line. UnitCostAED snapshots the weighted-average
// cost at the moment of sale, so later intakes never rewrite the margin
// of past sales.
type SaleItem struct {
	ID           id.ID       `db:"id" json:"id"`
	SaleID       id.ID       `db:"sale_id" json:"saleId"`
	ModelID      id.ID       `db:"model_id" json:"modelId"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	UnitPriceAED types.Money `db:"unit_price_aed" json:"unitPriceAed"`
	UnitCostAED  types.Money `db:"unit_cost_aed" json:"unitCostAed"`
}

// Validate implements self-validation.
func (s *Sale) Validate(ctx context.Context) error {
	if id.IsNil(s.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if len(s.Items) == 0 {
		return apperror.NewValidation("sale must contain at least one item")
	}
	for i, item := range s.Items {
		if id.IsNil(item.ModelID) {
			return apperror.NewValidation("item model is required").
				WithDetail("item", i)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("item", i).
				WithDetail("quantity", item.Quantity)
		}
		if item.UnitPriceAED.IsNegative() {
			return apperror.NewValidation("item unit price must not be negative").
				WithDetail("item", i)
		}
	}
	if s.AmountReceivedAED.IsNegative() {
		return apperror.NewValidation("amount received must not be negative")
	}
	return nil
}
