// Package fx provides fixed-rate AED/USD currency conversion.
//
// AED is the primary bookkeeping currency; USD is used for supplier-facing
// pricing. The rate is fixed for the lifetime of the process and injected at
// construction, never read from package state.
package fx

import (
	"github.com/shopspring/decimal"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/types"
)

// DefaultRate is the AED-per-USD rate used when none is configured.
const DefaultRate = "3.6725"

// Converter converts between AED and USD at a fixed rate.
//
// Every conversion result is rounded to 2 decimal places (half-up) at the
// call site. Repeated conversions therefore accumulate rounding error; this
// matches the bookkeeping convention of the business, where each recorded
// amount is a whole number of fils/cents.
type Converter struct {
	rate decimal.Decimal // AED per 1 USD
}

// New creates a Converter with the given AED-per-USD rate.
func New(aedPerUSD types.Money) (*Converter, error) {
	if !aedPerUSD.IsPositive() {
		return nil, apperror.NewValidation("conversion rate must be positive").
			WithDetail("rate", aedPerUSD.String())
	}
	return &Converter{rate: aedPerUSD}, nil
}

// MustNew creates a Converter from a rate string, panics on error.
// Use only for constants and tests.
func MustNew(rate string) *Converter {
	c, err := New(types.MustMoney(rate))
	if err != nil {
		panic(err)
	}
	return c
}

// Rate returns the configured AED-per-USD rate.
func (c *Converter) Rate() types.Money {
	return c.rate
}

// ToAED converts a USD amount to AED, rounded to 2 decimal places.
func (c *Converter) ToAED(usd types.Money) types.Money {
	return usd.Mul(c.rate).Round(2)
}

// ToUSD converts an AED amount to USD, rounded to 2 decimal places.
func (c *Converter) ToUSD(aed types.Money) types.Money {
	return aed.Div(c.rate).Round(2)
}
