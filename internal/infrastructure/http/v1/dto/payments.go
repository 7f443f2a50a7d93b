package dto

import (
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
)

// PaymentReceivedRequest records money received from a client.
type PaymentReceivedRequest struct {
	ClientID    string      `json:"clientId" binding:"required"`
	AmountAED   types.Money `json:"amountAed" binding:"required"`
	Date        time.Time   `json:"date,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ToInput converts request to domain input.
func (r *PaymentReceivedRequest) ToInput() ledger.ReceivedInput {
	clientID, _ := id.Parse(r.ClientID)
	return ledger.ReceivedInput{
		ClientID:    clientID,
		AmountAED:   r.AmountAED,
		Date:        r.Date,
		Description: r.Description,
	}
}

// PaymentPaidRequest records money paid out to a supplier. AmountUSD is
// optional; when omitted it is derived from the exchange rate.
type PaymentPaidRequest struct {
	SupplierID  string      `json:"supplierId" binding:"required"`
	AmountAED   types.Money `json:"amountAed" binding:"required"`
	AmountUSD   types.Money `json:"amountUsd,omitempty"`
	Date        time.Time   `json:"date,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ToInput converts request to domain input.
func (r *PaymentPaidRequest) ToInput() ledger.PaidInput {
	supplierID, _ := id.Parse(r.SupplierID)
	return ledger.PaidInput{
		SupplierID:  supplierID,
		AmountAED:   r.AmountAED,
		AmountUSD:   r.AmountUSD,
		Date:        r.Date,
		Description: r.Description,
	}
}

// ExpenseRequest records an expense against a phone model. The model ID
// comes from the URL path.
type ExpenseRequest struct {
	AmountAED   types.Money `json:"amountAed" binding:"required"`
	Date        time.Time   `json:"date,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ToInput converts request to domain input for the given model.
func (r *ExpenseRequest) ToInput(modelID id.ID) ledger.ExpenseInput {
	return ledger.ExpenseInput{
		ModelID:     modelID,
		AmountAED:   r.AmountAED,
		Date:        r.Date,
		Description: r.Description,
	}
}
