// Package stockintake implements the purchase lot workflow: a batch of
// phones arrives from a supplier priced in USD, shipping and local costs
// are spread evenly over the units, and the landed cost per unit feeds
// the weighted-average position of each model.
package stockintake

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// PurchaseLot is one received batch.
type PurchaseLot struct {
	ID            id.ID       `db:"id" json:"id"`
	SupplierID    id.ID       `db:"supplier_id" json:"supplierId"`
	Date          time.Time   `db:"lot_date" json:"date"`
	TotalUSD      types.Money `db:"total_usd" json:"totalUsd"`
	TotalAED      types.Money `db:"total_aed" json:"totalAed"`
	FedexUSD      types.Money `db:"fedex_usd" json:"fedexUsd"`
	LocalAED      types.Money `db:"local_aed" json:"localAed"`
	AmountPaidAED types.Money `db:"amount_paid_aed" json:"amountPaidAed"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`

	Items []PurchaseLotItem `db:"-" json:"items"`
}

// PurchaseLotItem is one model line inside a lot. UnitCostAED is the
// landed cost: the converted USD price plus the lot's per-unit overhead.
type PurchaseLotItem struct {
	ID           id.ID       `db:"id" json:"id"`
	LotID        id.ID       `db:"lot_id" json:"lotId"`
	ModelID      id.ID       `db:"model_id" json:"modelId"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	UnitPriceUSD types.Money `db:"unit_price_usd" json:"unitPriceUsd"`
	UnitCostAED  types.Money `db:"unit_cost_aed" json:"unitCostAed"`
}

// TotalQuantity sums the units across all lines.
func (l *PurchaseLot) TotalQuantity() int64 {
	var total int64
	for _, item := range l.Items {
		total += item.Quantity
	}
	return total
}

// Validate implements self-validation. The supplier is optional: a lot
// bought over the counter carries no supplier reference.
func (l *PurchaseLot) Validate(ctx context.Context) error {
	if len(l.Items) == 0 {
		return apperror.NewValidation("lot must contain at least one item")
	}
	for i, item := range l.Items {
		if id.IsNil(item.ModelID) {
			return apperror.NewValidation("item model is required").
				WithDetail("item", i)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("item", i).
				WithDetail("quantity", item.Quantity)
		}
		if item.UnitPriceUSD.IsNegative() {
			return apperror.NewValidation("item unit price must not be negative").
				WithDetail("item", i)
		}
	}
	if l.FedexUSD.IsNegative() || l.LocalAED.IsNegative() {
		return apperror.NewValidation("overhead costs must not be negative")
	}
	if l.AmountPaidAED.IsNegative() {
		return apperror.NewValidation("amount paid must not be negative")
	}
	return nil
}
