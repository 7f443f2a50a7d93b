package dto

import (
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/sale"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/stockintake"
)

// --- Stock Intake ---

// CreateStockIntakeRequest represents a request to record a purchase lot.
// All monetary inputs accept JSON numbers or strings; amounts are AED
// unless the field name says otherwise. The supplier is optional.
type CreateStockIntakeRequest struct {
	SupplierID    string                   `json:"supplierId,omitempty"`
	Date          time.Time                `json:"date,omitempty"`
	Items         []StockIntakeItemRequest `json:"items" binding:"required,min=1,dive"`
	FedexUSD      types.Money              `json:"fedexUsd,omitempty"`
	LocalAED      types.Money              `json:"localAed,omitempty"`
	AmountPaidAED types.Money              `json:"amountPaidAed,omitempty"`
}

// StockIntakeItemRequest is one model line in an intake request.
type StockIntakeItemRequest struct {
	ModelID      string      `json:"modelId" binding:"required"`
	Quantity     int64       `json:"quantity" binding:"required,gt=0"`
	UnitPriceUSD types.Money `json:"unitPriceUsd" binding:"required"`
}

// ToInput converts request to domain input. Malformed IDs become nil
// and are rejected by document validation.
func (r *CreateStockIntakeRequest) ToInput() stockintake.Input {
	supplierID, _ := id.Parse(r.SupplierID)

	input := stockintake.Input{
		SupplierID:    supplierID,
		Date:          r.Date,
		FedexUSD:      r.FedexUSD,
		LocalAED:      r.LocalAED,
		AmountPaidAED: r.AmountPaidAED,
		Items:         make([]stockintake.ItemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		modelID, _ := id.Parse(item.ModelID)
		input.Items = append(input.Items, stockintake.ItemInput{
			ModelID:      modelID,
			Quantity:     item.Quantity,
			UnitPriceUSD: item.UnitPriceUSD,
		})
	}
	return input
}

// --- Sale ---

// CreateSaleRequest represents a request to record a sale.
type CreateSaleRequest struct {
	ClientID          string            `json:"clientId" binding:"required"`
	Date              time.Time         `json:"date,omitempty"`
	Items             []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	AmountReceivedAED types.Money       `json:"amountReceivedAed,omitempty"`
	Description       string            `json:"description,omitempty"`
}

// SaleItemRequest is one model line in a sale request.
type SaleItemRequest struct {
	ModelID      string      `json:"modelId" binding:"required"`
	Quantity     int64       `json:"quantity" binding:"required,gt=0"`
	UnitPriceAED types.Money `json:"unitPriceAed" binding:"required"`
}

// ToInput converts request to domain input.
func (r *CreateSaleRequest) ToInput() sale.Input {
	clientID, _ := id.Parse(r.ClientID)

	input := sale.Input{
		ClientID:          clientID,
		Date:              r.Date,
		AmountReceivedAED: r.AmountReceivedAED,
		Description:       r.Description,
		Items:             make([]sale.ItemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		modelID, _ := id.Parse(item.ModelID)
		input.Items = append(input.Items, sale.ItemInput{
			ModelID:      modelID,
			Quantity:     item.Quantity,
			UnitPriceAED: item.UnitPriceAED,
		})
	}
	return input
}
