package domain

import "math"

const (
	DefaultTaxRate        = 0.13
	DefaultServiceFeeRate = 0.04
)

// PaymentAccount carries the rates used to compute the total shown on
// receipts and status emails. Zero rates fall back to the defaults.
type PaymentAccount struct {
	TaxRate        float64
	ServiceFeeRate float64
}

func (a PaymentAccount) EffectiveTaxRate() float64 {
	if a.TaxRate == 0 {
		return DefaultTaxRate
	}
	return a.TaxRate
}

func (a PaymentAccount) EffectiveServiceFeeRate() float64 {
	if a.ServiceFeeRate == 0 {
		return DefaultServiceFeeRate
	}
	return a.ServiceFeeRate
}

type Totals struct {
	TicketCents     int64
	TaxCents        int64
	ServiceFeeCents int64
	TotalCents      int64
}

// Totals computes the receipt breakdown for a ticket price in cents.
func (a PaymentAccount) Totals(ticketCents int64) Totals {
	tax := int64(math.Round(float64(ticketCents) * a.EffectiveTaxRate()))
	fee := int64(math.Round(float64(ticketCents) * a.EffectiveServiceFeeRate()))
	return Totals{
		TicketCents:     ticketCents,
		TaxCents:        tax,
		ServiceFeeCents: fee,
		TotalCents:      ticketCents + tax + fee,
	}
}
