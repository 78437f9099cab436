package booking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/avdonin/skybooking/internal/repository"
)

type Mailer interface {
	SendStatusUpdate(booking *domain.Booking, flight *domain.Flight, previous, current domain.BookingStatus) error
	SendPaymentConfirmation(booking *domain.Booking, flight *domain.Flight, totals domain.Totals, receiptPath string) error
}

type ReceiptGenerator interface {
	Generate(booking *domain.Booking, flight *domain.Flight, account domain.PaymentAccount) (string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Dispatcher runs the side effects of a committed status transition: the
// Kafka booking event, the status-update email, and on a transition into
// PAID the receipt generation plus confirmation email. It runs detached from
// the request that caused the transition; failures are logged and swallowed,
// never surfaced to the caller and never able to undo the committed status.
type Dispatcher struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
	accounts repository.PaymentAccountRepository
	mailer   Mailer
	receipts ReceiptGenerator
	producer Producer
	topic    string

	wg sync.WaitGroup
}

func NewDispatcher(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	accounts repository.PaymentAccountRepository,
	mailer Mailer,
	receipts ReceiptGenerator,
	producer Producer,
	topic string,
) *Dispatcher {
	return &Dispatcher{
		bookings: bookings,
		flights:  flights,
		accounts: accounts,
		mailer:   mailer,
		receipts: receipts,
		producer: producer,
		topic:    topic,
	}
}

// OnTransition schedules the side effects for a genuine, already committed
// transition. It returns immediately; the caller never waits on email
// delivery or PDF rendering.
func (d *Dispatcher) OnTransition(booking *domain.Booking, previous domain.BookingStatus) {
	b := *booking
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("WARNING: side effects for booking %d panicked: %v", b.ID, r)
			}
		}()
		d.run(context.Background(), &b, previous)
	}()
}

// Wait blocks until every scheduled side-effect task has finished. Used by
// tests and by shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	d.publishTransition(ctx, booking, previous)

	flight, err := d.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		log.Printf("WARNING: hydrate flight %d for booking %d: %v", booking.FlightID, booking.ID, err)
		return
	}

	if d.mailer != nil {
		if err := d.mailer.SendStatusUpdate(booking, flight, previous, booking.Status); err != nil {
			log.Printf("WARNING: status email for booking %d: %v", booking.ID, err)
		}
	}

	if booking.Status == domain.BookingStatusPaid && previous != domain.BookingStatusPaid {
		d.handlePaid(ctx, booking, flight)
	}
}

func (d *Dispatcher) handlePaid(ctx context.Context, booking *domain.Booking, flight *domain.Flight) {
	updated, err := d.EnsureReceipt(ctx, booking)
	if err != nil {
		log.Printf("WARNING: receipt for booking %d: %v", booking.ID, err)
		return
	}

	if d.mailer == nil {
		return
	}
	account, err := d.accounts.Get(ctx)
	if err != nil {
		log.Printf("WARNING: payment account rates for booking %d: %v", booking.ID, err)
		account = domain.PaymentAccount{}
	}
	if err := d.mailer.SendPaymentConfirmation(updated, flight, account.Totals(updated.TicketPriceCents), updated.ReceiptPath); err != nil {
		log.Printf("WARNING: confirmation email for booking %d: %v", updated.ID, err)
	}
}

// EnsureReceipt generates and stores the receipt for a booking that does not
// carry one yet, and returns the booking with its winning receipt path. A
// booking accumulates at most one stored receipt; subsequent calls reuse it.
func (d *Dispatcher) EnsureReceipt(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ReceiptPath != "" {
		return booking, nil
	}

	flight, err := d.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}
	account, err := d.accounts.Get(ctx)
	if err != nil {
		return nil, err
	}
	path, err := d.receipts.Generate(booking, flight, account)
	if err != nil {
		return nil, err
	}
	return d.bookings.UpdateReceipt(ctx, booking.ID, path)
}

func (d *Dispatcher) publishTransition(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) {
	if d.producer == nil || d.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:           "status_changed",
		BookingID:      booking.ID,
		FlightID:       booking.FlightID,
		Email:          booking.Email,
		PreviousStatus: string(previous),
		Status:         string(booking.Status),
		Forced:         !domain.IsStandardTransition(previous, booking.Status),
		DeclineReason:  booking.DeclineReason,
		OccurredAt:     time.Now().UTC(),
	}
	if err := d.producer.Publish(ctx, d.topic, eventKey(booking.ID), event); err != nil {
		log.Printf("WARNING: publish status_changed event for booking %d: %v", booking.ID, err)
	}
}
