package email

import (
	"fmt"

	"github.com/avdonin/skybooking/config"
	"github.com/avdonin/skybooking/internal/domain"
	"gopkg.in/gomail.v2"
)

type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendStatusUpdate notifies the passenger that the booking moved from one
// status to another.
func (s *Sender) SendStatusUpdate(booking *domain.Booking, flight *domain.Flight, previous, current domain.BookingStatus) error {
	subject := fmt.Sprintf("Booking #%d: %s", booking.ID, current)
	body := fmt.Sprintf("Dear %s,\n\nYour booking for flight %s (%s -> %s, departing %s) has been updated: %s -> %s.\n\n%s\n",
		booking.PassengerName, flight.Number, flight.FromAirport, flight.ToAirport,
		flight.DepartureTime.Format("2006-01-02 15:04"), previous, current, StatusNote(current, booking))

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", booking.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return s.dialer.DialAndSend(msg)
}

// SendPaymentConfirmation sends the paid notice with the PDF receipt attached.
func (s *Sender) SendPaymentConfirmation(booking *domain.Booking, flight *domain.Flight, totals domain.Totals, receiptPath string) error {
	subject := fmt.Sprintf("Payment confirmed for booking #%d", booking.ID)
	body := fmt.Sprintf("Dear %s,\n\nWe received your payment for flight %s (%s -> %s).\nTotal charged: $%d.%02d. Your receipt is attached.\n",
		booking.PassengerName, flight.Number, flight.FromAirport, flight.ToAirport,
		totals.TotalCents/100, totals.TotalCents%100)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", booking.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if receiptPath != "" {
		msg.Attach(receiptPath)
	}
	return s.dialer.DialAndSend(msg)
}

// StatusNote returns the status-specific line appended to update emails.
func StatusNote(status domain.BookingStatus, booking *domain.Booking) string {
	switch status {
	case domain.BookingStatusPendingPayment:
		return "We received your payment details and will verify them shortly."
	case domain.BookingStatusConfirmed:
		return "Your booking is confirmed. We look forward to welcoming you on board."
	case domain.BookingStatusPaid:
		return "Your payment has been verified. Your ticket is ready."
	case domain.BookingStatusDeclined:
		if booking.DeclineReason != "" {
			return fmt.Sprintf("Unfortunately your booking was declined: %s.", booking.DeclineReason)
		}
		return "Unfortunately your booking was declined. Please contact support for details."
	case domain.BookingStatusCompleted:
		return "Your journey is complete. Thank you for flying with us."
	}
	return "Your booking status has changed."
}
