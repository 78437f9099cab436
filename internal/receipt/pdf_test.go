package receipt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerator_Generate(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(dir)

	booking := &domain.Booking{
		ID:               42,
		PassengerName:    "Anna Petrova",
		TravelClass:      domain.TravelClassBusiness,
		TicketPriceCents: 25000,
		PaymentReference: "TX-A1B2C3-1700000000",
		Status:           domain.BookingStatusPaid,
	}
	flight := &domain.Flight{
		Number:        "SB-101",
		FromAirport:   "LED",
		ToAirport:     "IST",
		DepartureTime: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
	}

	path, err := gen.Generate(booking, flight, domain.PaymentAccount{})

	assert.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `receipt-42-[0-9a-f-]+\.pdf$`, path)

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerator_Generate_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")
	gen := NewGenerator(dir)

	booking := &domain.Booking{ID: 1, PassengerName: "Anna", TicketPriceCents: 10000, TravelClass: domain.TravelClassEconomy}
	flight := &domain.Flight{Number: "SB-101", FromAirport: "LED", ToAirport: "IST"}

	path, err := gen.Generate(booking, flight, domain.PaymentAccount{TaxRate: 0.2, ServiceFeeRate: 0.05})
	assert.NoError(t, err)
	assert.FileExists(t, path)
}
