package sale

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
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// CashAccountName is the account walk-in settlements are posted against.
const CashAccountName = "Cash"

// ItemInput is one requested sale line.
type ItemInput struct {
	ModelID      id.ID
	Quantity     int64
	UnitPriceAED types.Money
}

// Input describes a sale request. Description, when set, is appended to
// the sale's ledger entry.
type Input struct {
	ClientID          id.ID
	Date              time.Time
	Items             []ItemInput
	AmountReceivedAED types.Money
	Description       string
}

// Service orchestrates the sale workflow.
type Service struct {
	repo      Repository
	txManager tx.Manager
	clients   client.Repository
	models    phonemodel.Repository
	stock     *inventory.Service
	books     *ledger.Service
	recorder  audit.Recorder
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	clients client.Repository,
	models phonemodel.Repository,
	stock *inventory.Service,
	books *ledger.Service,
	recorder audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		clients:   clients,
		models:    models,
		stock:     stock,
		books:     books,
		recorder:  recorder,
	}
}

// Create sells stock to a client. Availability is checked up front with
// per-model aggregated quantities so a doomed request fails before the
// transaction opens; the conditional decrement inside the transaction
// remains the authoritative guard against concurrent sales.
func (s *Service) Create(ctx context.Context, input Input) (*Sale, error) {
	doc := s.buildSale(input)
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	c, err := s.clients.GetByID(ctx, doc.ClientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NewNotFound("client", doc.ClientID)
	}

	names, err := s.modelNames(ctx, doc.Items)
	if err != nil {
		return nil, err
	}

	if err := s.stock.CheckAvailability(ctx, aggregateRequirements(doc.Items, names)); err != nil {
		return nil, err
	}

	doc.PaymentType = PaymentCredit
	if c.IsWalkin() {
		doc.PaymentType = PaymentCash
	}

	total := types.Zero()
	for _, item := range doc.Items {
		total = total.Add(item.UnitPriceAED.Mul(decimal.NewFromInt(item.Quantity)))
	}
	doc.TotalAED = total

	saleDesc := fmt.Sprintf("Sale to %s", c.Name)
	if input.Description != "" {
		saleDesc = fmt.Sprintf("%s - %s", saleDesc, input.Description)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Snapshot unit costs before consumption so the margin reflects
		// the average the units actually left at.
		for i := range doc.Items {
			item := &doc.Items[i]
			pos, err := s.stock.Get(ctx, item.ModelID)
			if err != nil {
				return err
			}
			if pos == nil {
				return apperror.NewNoInventory(names[item.ModelID].Name)
			}
			item.UnitCostAED = pos.AvgCostAED
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}

		for _, item := range doc.Items {
			if err := s.stock.Consume(ctx, item.ModelID, names[item.ModelID].Name, item.Quantity); err != nil {
				return err
			}
		}

		clientAccount, err := s.books.EnsureAccount(ctx, c.Name, ledger.AccountClient)
		if err != nil {
			return err
		}
		saleEntry := &ledger.Entry{
			AccountID:     clientAccount,
			Date:          doc.Date,
			Description:   saleDesc,
			CreditAED:     doc.TotalAED,
			ReferenceType: ledger.RefSale,
			ReferenceID:   doc.ID,
		}
		if err := s.books.Post(ctx, saleEntry); err != nil {
			return err
		}

		// Walk-in sales settle on the spot: the cash account takes the
		// money and the client account is immediately debited so the
		// walk-in balance stays at zero.
		if c.IsWalkin() && doc.AmountReceivedAED.IsPositive() {
			cashAccount, err := s.books.EnsureAccount(ctx, CashAccountName, ledger.AccountCash)
			if err != nil {
				return err
			}
			cashEntry := &ledger.Entry{
				AccountID:     cashAccount,
				Date:          doc.Date,
				Description:   fmt.Sprintf("Cash sale to %s", c.Name),
				CreditAED:     doc.AmountReceivedAED,
				ReferenceType: ledger.RefSale,
				ReferenceID:   doc.ID,
			}
			if err := s.books.Post(ctx, cashEntry); err != nil {
				return err
			}

			settleEntry := &ledger.Entry{
				AccountID:     clientAccount,
				Date:          doc.Date,
				Description:   fmt.Sprintf("Walk-in settlement for sale to %s", c.Name),
				DebitAED:      doc.AmountReceivedAED,
				ReferenceType: ledger.RefPayment,
				ReferenceID:   doc.ID,
			}
			if err := s.books.Post(ctx, settleEntry); err != nil {
				return err
			}
		}

		audit.Record(s.recorder, ctx, audit.ActionCreate, "sale", doc.ID, doc)
		return nil
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewTransaction(err)
	}

	logger.Info(ctx, "sale created",
		"sale_id", doc.ID,
		"client_id", doc.ClientID,
		"total_aed", doc.TotalAED,
	)
	return doc, nil
}

func (s *Service) buildSale(input Input) *Sale {
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	doc := &Sale{
		ID:                id.New(),
		ClientID:          input.ClientID,
		Date:              date,
		AmountReceivedAED: input.AmountReceivedAED,
		CreatedAt:         time.Now().UTC(),
	}
	for _, item := range input.Items {
		doc.Items = append(doc.Items, SaleItem{
			ID:           id.New(),
			SaleID:       doc.ID,
			ModelID:      item.ModelID,
			Quantity:     item.Quantity,
			UnitPriceAED: item.UnitPriceAED,
		})
	}
	return doc
}

func (s *Service) modelNames(ctx context.Context, items []SaleItem) (map[id.ID]phonemodel.PhoneModel, error) {
	ids := make([]id.ID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ModelID)
	}
	names, err := s.models.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, ok := names[item.ModelID]; !ok {
			return nil, apperror.NewNotFound("phone model", item.ModelID)
		}
	}
	return names, nil
}

// aggregateRequirements folds duplicate model lines into one requirement
// so the availability check sees the combined demand.
func aggregateRequirements(items []SaleItem, names map[id.ID]phonemodel.PhoneModel) []inventory.Requirement {
	index := make(map[id.ID]int)
	var reqs []inventory.Requirement
	for _, item := range items {
		if i, ok := index[item.ModelID]; ok {
			reqs[i].Quantity += item.Quantity
			continue
		}
		index[item.ModelID] = len(reqs)
		reqs = append(reqs, inventory.Requirement{
			ModelID:   item.ModelID,
			ModelName: names[item.ModelID].Name,
			Quantity:  item.Quantity,
		})
	}
	return reqs
}

// GetByID returns one sale with its items.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFound("sale", saleID)
	}
	return doc, nil
}

// List returns all sales, newest first.
func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.repo.List(ctx)
}
