package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Generator renders PDF payment receipts into a directory and returns the
// path of the written file.
type Generator struct {
	dir string
}

func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

// Generate writes a receipt for a paid booking. The content is fully
// determined by the booking, flight and rates except for the receipt number
// and issue timestamp.
func (g *Generator) Generate(booking *domain.Booking, flight *domain.Flight, account domain.PaymentAccount) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}

	totals := account.Totals(booking.TicketPriceCents)
	receiptNo := uuid.NewString()
	path := filepath.Join(g.dir, fmt.Sprintf("receipt-%d-%s.pdf", booking.ID, receiptNo))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Payment Receipt")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Receipt no: %s", receiptNo))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Issued: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Booking")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Booking #%d  -  %s", booking.ID, booking.PassengerName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Flight %s: %s -> %s", flight.Number, flight.FromAirport, flight.ToAirport))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Departure: %s", flight.DepartureTime.Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Class: %s", booking.TravelClass))
	pdf.Ln(6)
	if booking.PaymentReference != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Payment reference: %s", booking.PaymentReference))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Amount")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Ticket: %s", formatCents(totals.TicketCents)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Tax (%.0f%%): %s", account.EffectiveTaxRate()*100, formatCents(totals.TaxCents)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Service fee (%.0f%%): %s", account.EffectiveServiceFeeRate()*100, formatCents(totals.ServiceFeeCents)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %s", formatCents(totals.TotalCents)))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write receipt pdf: %w", err)
	}
	return path, nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
