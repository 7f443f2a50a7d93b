package stockintake

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/tx"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/audit"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/supplier"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// unitCostScale keeps landed unit costs at the same precision as the
// stored weighted averages.
const unitCostScale = 4

// InventoryAccountName is the account purchases are debited against.
const InventoryAccountName = "Inventory"

// CashAccountName is the account cash movements are posted against.
const CashAccountName = "Cash"

// ItemInput is one requested lot line.
type ItemInput struct {
	ModelID      id.ID
	Quantity     int64
	UnitPriceUSD types.Money
}

// Input describes a stock intake request.
type Input struct {
	SupplierID    id.ID
	Date          time.Time
	Items         []ItemInput
	FedexUSD      types.Money
	LocalAED      types.Money
	AmountPaidAED types.Money
}

// Service orchestrates the intake workflow: lot persistence, position
// updates and ledger postings happen in one transaction.
type Service struct {
	repo      Repository
	txManager tx.Manager
	converter *fx.Converter
	suppliers supplier.Repository
	stock     *inventory.Service
	books     *ledger.Service
	recorder  audit.Recorder
}

// NewService creates a new stock intake service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	converter *fx.Converter,
	suppliers supplier.Repository,
	stock *inventory.Service,
	books *ledger.Service,
	recorder audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		converter: converter,
		suppliers: suppliers,
		stock:     stock,
		books:     books,
		recorder:  recorder,
	}
}

// Create receives a lot. The per-unit overhead is the fedex fee
// (converted to AED) plus the local charges, divided evenly over every
// unit in the lot regardless of model. Each line's landed cost is its
// converted unit price plus that share.
func (s *Service) Create(ctx context.Context, input Input) (*PurchaseLot, error) {
	lot := s.buildLot(input)
	if err := lot.Validate(ctx); err != nil {
		return nil, err
	}

	// The supplier is optional; without one the ledger descriptions stay
	// generic.
	purchaseDesc := "Stock purchase"
	cashDesc := "Cash paid for stock"
	if !id.IsNil(lot.SupplierID) {
		sup, err := s.suppliers.GetByID(ctx, lot.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, apperror.NewNotFound("supplier", lot.SupplierID)
		}
		purchaseDesc = fmt.Sprintf("Stock purchase from %s", sup.Name)
		cashDesc = fmt.Sprintf("Cash paid for stock from %s", sup.Name)
	}

	totalQty := lot.TotalQuantity()
	extraAED := s.converter.ToAED(lot.FedexUSD).Add(lot.LocalAED)
	overheadPerUnit := extraAED.Div(decimal.NewFromInt(totalQty)).Round(unitCostScale)

	totalUSD := types.Zero()
	for i := range lot.Items {
		item := &lot.Items[i]
		totalUSD = totalUSD.Add(item.UnitPriceUSD.Mul(decimal.NewFromInt(item.Quantity)))
		item.UnitCostAED = s.converter.ToAED(item.UnitPriceUSD).Add(overheadPerUnit)
	}
	lot.TotalUSD = totalUSD
	lot.TotalAED = s.converter.ToAED(totalUSD).Add(extraAED)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, lot); err != nil {
			return err
		}

		for _, item := range lot.Items {
			if err := s.stock.ApplyIntake(ctx, item.ModelID, item.Quantity, item.UnitCostAED); err != nil {
				return err
			}
		}

		invAccount, err := s.books.EnsureAccount(ctx, InventoryAccountName, ledger.AccountInventory)
		if err != nil {
			return err
		}
		purchaseEntry := &ledger.Entry{
			AccountID:     invAccount,
			Date:          lot.Date,
			Description:   purchaseDesc,
			DebitAED:      lot.TotalAED,
			DebitUSD:      lot.TotalUSD,
			ReferenceType: ledger.RefPurchase,
			ReferenceID:   lot.ID,
		}
		if err := s.books.Post(ctx, purchaseEntry); err != nil {
			return err
		}

		if lot.AmountPaidAED.IsPositive() {
			cashAccount, err := s.books.EnsureAccount(ctx, CashAccountName, ledger.AccountCash)
			if err != nil {
				return err
			}
			cashEntry := &ledger.Entry{
				AccountID:     cashAccount,
				Date:          lot.Date,
				Description:   cashDesc,
				CreditAED:     lot.AmountPaidAED,
				ReferenceType: ledger.RefPurchase,
				ReferenceID:   lot.ID,
			}
			if err := s.books.Post(ctx, cashEntry); err != nil {
				return err
			}
		}

		audit.Record(s.recorder, ctx, audit.ActionCreate, "purchase_lot", lot.ID, lot)
		return nil
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewTransaction(err)
	}

	logger.Info(ctx, "stock intake created",
		"lot_id", lot.ID,
		"supplier_id", lot.SupplierID,
		"total_usd", lot.TotalUSD,
		"quantity", totalQty,
	)
	return lot, nil
}

func (s *Service) buildLot(input Input) *PurchaseLot {
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	lot := &PurchaseLot{
		ID:            id.New(),
		SupplierID:    input.SupplierID,
		Date:          date,
		FedexUSD:      input.FedexUSD,
		LocalAED:      input.LocalAED,
		AmountPaidAED: input.AmountPaidAED,
		CreatedAt:     time.Now().UTC(),
	}
	for _, item := range input.Items {
		lot.Items = append(lot.Items, PurchaseLotItem{
			ID:           id.New(),
			LotID:        lot.ID,
			ModelID:      item.ModelID,
			Quantity:     item.Quantity,
			UnitPriceUSD: item.UnitPriceUSD,
		})
	}
	return lot
}

// GetByID returns one lot with its items.
func (s *Service) GetByID(ctx context.Context, lotID id.ID) (*PurchaseLot, error) {
	lot, err := s.repo.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperror.NewNotFound("purchase lot", lotID)
	}
	return lot, nil
}

// List returns all lots, newest first.
func (s *Service) List(ctx context.Context) ([]PurchaseLot, error) {
	return s.repo.List(ctx)
}
