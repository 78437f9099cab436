package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus(t *testing.T) {
	for _, status := range AllBookingStatuses {
		parsed, err := ParseBookingStatus(string(status))
		assert.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	testCases := []string{"", "PAYED", "pending", "CANCELLED", "Pending Payment"}
	for _, tc := range testCases {
		_, err := ParseBookingStatus(tc)
		assert.Error(t, err, "expected %q to be rejected", tc)
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusDeclined.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusPendingPayment.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.False(t, BookingStatusPaid.IsTerminal())
}

func TestParseTravelClass(t *testing.T) {
	for _, valid := range []string{"ECONOMY", "BUSINESS", "FIRST"} {
		class, err := ParseTravelClass(valid)
		assert.NoError(t, err)
		assert.Equal(t, TravelClass(valid), class)
	}

	_, err := ParseTravelClass("PREMIUM")
	assert.Error(t, err)
}

func TestBooking_HasPaymentEvidence(t *testing.T) {
	b := &Booking{}
	assert.False(t, b.HasPaymentEvidence())

	b.PaymentReference = "TX-ABC123-1700000000"
	assert.True(t, b.HasPaymentEvidence())

	b = &Booking{PaymentProofPath: "uploads/proof-1.png"}
	assert.True(t, b.HasPaymentEvidence())
}

func TestFlight_PriceFor(t *testing.T) {
	f := &Flight{
		EconomyPriceCents:  10000,
		BusinessPriceCents: 25000,
		FirstPriceCents:    60000,
	}

	price, err := f.PriceFor(TravelClassEconomy)
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), price)

	price, err = f.PriceFor(TravelClassBusiness)
	assert.NoError(t, err)
	assert.Equal(t, int64(25000), price)

	price, err = f.PriceFor(TravelClassFirst)
	assert.NoError(t, err)
	assert.Equal(t, int64(60000), price)

	_, err = f.PriceFor(TravelClass("PREMIUM"))
	assert.Error(t, err)
}

func TestPaymentAccount_Totals_Defaults(t *testing.T) {
	account := PaymentAccount{}

	totals := account.Totals(10000)
	assert.Equal(t, int64(10000), totals.TicketCents)
	assert.Equal(t, int64(1300), totals.TaxCents)
	assert.Equal(t, int64(400), totals.ServiceFeeCents)
	assert.Equal(t, int64(11700), totals.TotalCents)
}

func TestPaymentAccount_Totals_CustomRates(t *testing.T) {
	account := PaymentAccount{TaxRate: 0.2, ServiceFeeRate: 0.05}

	totals := account.Totals(10000)
	assert.Equal(t, int64(2000), totals.TaxCents)
	assert.Equal(t, int64(500), totals.ServiceFeeCents)
	assert.Equal(t, int64(12500), totals.TotalCents)
}

func TestIsStandardTransition(t *testing.T) {
	testCases := []struct {
		from, to BookingStatus
		standard bool
	}{
		{BookingStatusPending, BookingStatusPendingPayment, true},
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusDeclined, true},
		{BookingStatusPendingPayment, BookingStatusPaid, true},
		{BookingStatusPendingPayment, BookingStatusDeclined, true},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusPaid, BookingStatusCompleted, true},
		{BookingStatusPending, BookingStatusPaid, false},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusDeclined, BookingStatusConfirmed, false},
		{BookingStatusPaid, BookingStatusPending, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.standard, IsStandardTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
