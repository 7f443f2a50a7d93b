// Package inventory implements the stock accumulation register.
// One position row exists per phone model and carries the remaining
// quantity together with its weighted-average unit cost in AED and USD.
package inventory

import (
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// Position is the current stock state of one phone model.
type Position struct {
	ModelID           id.ID       `db:"model_id" json:"modelId"`
	QuantityRemaining int64       `db:"quantity_remaining" json:"quantityRemaining"`
	AvgCostAED        types.Money `db:"avg_cost_aed" json:"avgCostAed"`
	AvgCostUSD        types.Money `db:"avg_cost_usd" json:"avgCostUsd"`
	LastCostAED       types.Money `db:"last_cost_aed" json:"lastCostAed"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updatedAt"`
}

// Requirement is a demand against a model's position, used for
// availability checks before a sale is committed.
type Requirement struct {
	ModelID   id.ID
	ModelName string
	Quantity  int64
}
