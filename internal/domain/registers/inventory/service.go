package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// avgCostScale is the storage precision of weighted-average unit costs.
// Averages keep 4 decimal places so repeated blending does not drift.
const avgCostScale = 4

// Service maintains weighted-average positions. All mutating methods must
// run inside a transaction opened by the calling document service.
type Service struct {
	repo      Repository
	converter *fx.Converter
}

// NewService creates a new inventory register service.
func NewService(repo Repository, converter *fx.Converter) *Service {
	return &Service{repo: repo, converter: converter}
}

// ApplyIntake blends a received batch into the model's position:
//
//	newAvg = (oldAvg*oldQty + unitCost*qty) / (oldQty + qty)
//
// unitCostAED is the landed cost per unit (converted price plus the
// lot's per-unit overhead share). A model with no prior position starts
// at the batch cost.
func (s *Service) ApplyIntake(ctx context.Context, modelID id.ID, qty int64, unitCostAED types.Money) error {
	if qty <= 0 {
		return apperror.NewValidation("intake quantity must be positive").
			WithDetail("quantity", qty)
	}

	pos, err := s.repo.GetForUpdate(ctx, modelID)
	if err != nil {
		return err
	}
	if pos == nil {
		pos = &Position{ModelID: modelID}
	}

	oldQty := decimal.NewFromInt(pos.QuantityRemaining)
	addQty := decimal.NewFromInt(qty)
	newQty := oldQty.Add(addQty)

	totalValue := pos.AvgCostAED.Mul(oldQty).Add(unitCostAED.Mul(addQty))
	newAvg := totalValue.Div(newQty).Round(avgCostScale)

	pos.QuantityRemaining += qty
	pos.AvgCostAED = newAvg
	pos.AvgCostUSD = s.converter.ToUSD(newAvg)
	pos.LastCostAED = unitCostAED
	pos.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, pos); err != nil {
		return err
	}

	logger.Debug(ctx, "intake applied",
		"model_id", modelID,
		"quantity", qty,
		"unit_cost_aed", unitCostAED,
		"avg_cost_aed", newAvg,
	)
	return nil
}

// ApplyExpense spreads an extra cost amount over the units currently on
// hand, raising the weighted-average cost without changing quantity:
//
//	newAvg = (avg*qty + amount) / qty
//
// A model with no position cannot absorb an expense. When the position
// exists but holds zero units there is nothing to carry the cost, so the
// average resets to zero and the expense lives on in the ledger only.
func (s *Service) ApplyExpense(ctx context.Context, modelID id.ID, modelName string, amountAED types.Money) error {
	if !amountAED.IsPositive() {
		return apperror.NewValidation("expense amount must be positive").
			WithDetail("amount", amountAED)
	}

	pos, err := s.repo.GetForUpdate(ctx, modelID)
	if err != nil {
		return err
	}
	if pos == nil {
		return apperror.NewNoInventory(modelName)
	}
	var newAvg types.Money
	if pos.QuantityRemaining == 0 {
		logger.Warn(ctx, "expense on empty position, average reset to zero",
			"model_id", modelID, "amount_aed", amountAED)
		newAvg = types.Zero()
	} else {
		qty := decimal.NewFromInt(pos.QuantityRemaining)
		newAvg = pos.AvgCostAED.Mul(qty).Add(amountAED).Div(qty).Round(avgCostScale)
	}

	pos.AvgCostAED = newAvg
	pos.AvgCostUSD = s.converter.ToUSD(newAvg)
	pos.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, pos); err != nil {
		return err
	}

	logger.Debug(ctx, "expense applied",
		"model_id", modelID,
		"amount_aed", amountAED,
		"avg_cost_aed", newAvg,
	)
	return nil
}

// Consume decrements the position by qty. The decrement is conditional at
// the storage level, so two concurrent sales cannot both take the last
// units: the loser observes an unchanged row and gets an insufficient
// stock error built from the quantity actually available.
func (s *Service) Consume(ctx context.Context, modelID id.ID, modelName string, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("consume quantity must be positive").
			WithDetail("quantity", qty)
	}

	ok, err := s.repo.Consume(ctx, modelID, qty)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	pos, err := s.repo.Get(ctx, modelID)
	if err != nil {
		return err
	}
	if pos == nil {
		return apperror.NewNoInventory(modelName)
	}
	return apperror.NewInsufficientStock(modelName, pos.QuantityRemaining, qty)
}

// CheckAvailability verifies every requirement against current positions
// and returns the first shortfall found. It gives fast feedback before a
// sale transaction is opened; Consume remains the authoritative guard.
func (s *Service) CheckAvailability(ctx context.Context, reqs []Requirement) error {
	for _, r := range reqs {
		pos, err := s.repo.Get(ctx, r.ModelID)
		if err != nil {
			return err
		}
		if pos == nil {
			return apperror.NewNoInventory(r.ModelName)
		}
		if pos.QuantityRemaining < r.Quantity {
			return apperror.NewInsufficientStock(r.ModelName, pos.QuantityRemaining, r.Quantity)
		}
	}
	return nil
}

// Get returns the current position for a model, or nil when none exists.
func (s *Service) Get(ctx context.Context, modelID id.ID) (*Position, error) {
	return s.repo.Get(ctx, modelID)
}

// List returns all positions.
func (s *Service) List(ctx context.Context) ([]Position, error) {
	return s.repo.List(ctx)
}
