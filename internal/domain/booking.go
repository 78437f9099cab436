package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "PENDING"
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusPaid           BookingStatus = "PAID"
	BookingStatusDeclined       BookingStatus = "DECLINED"
	BookingStatusCompleted      BookingStatus = "COMPLETED"
)

// AllBookingStatuses lists every status the lifecycle recognises.
var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusPendingPayment,
	BookingStatusConfirmed,
	BookingStatusPaid,
	BookingStatusDeclined,
	BookingStatusCompleted,
}

// ParseBookingStatus rejects anything outside the six known states.
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, status := range AllBookingStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusDeclined
}

type TravelClass string

const (
	TravelClassEconomy  TravelClass = "ECONOMY"
	TravelClassBusiness TravelClass = "BUSINESS"
	TravelClassFirst    TravelClass = "FIRST"
)

func ParseTravelClass(s string) (TravelClass, error) {
	switch TravelClass(s) {
	case TravelClassEconomy, TravelClassBusiness, TravelClassFirst:
		return TravelClass(s), nil
	}
	return "", fmt.Errorf("unknown travel class %q", s)
}

type Booking struct {
	ID            int64
	UserID        int64
	FlightID      int64
	PassengerName string
	Email         string
	Phone         string
	TravelClass   TravelClass
	// TicketPriceCents is frozen at creation from the flight's class price
	// and never recomputed from the live flight record.
	TicketPriceCents int64
	Status           BookingStatus
	PaymentReference string
	PaymentProofPath string
	DeclineReason    string
	ReceiptPath      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPaymentEvidence reports whether the customer has attached a payment
// reference or a proof-of-payment file.
func (b *Booking) HasPaymentEvidence() bool {
	return b.PaymentReference != "" || b.PaymentProofPath != ""
}
