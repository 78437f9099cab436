package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/avdonin/skybooking/internal/repository"
)

// ErrValidation marks synchronously rejected input: bad status names,
// missing payment proof, unknown travel classes. Distinct from
// repository.ErrBookingNotFound so handlers can map them to different codes.
var ErrValidation = errors.New("invalid input")

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	RecordPayment(ctx context.Context, id int64, input RecordPaymentInput) (*domain.Booking, error)
	ChangeStatus(ctx context.Context, id int64, status, declineReason string) (*domain.Booking, error)
	GetReceipt(ctx context.Context, id int64) (string, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type CreateBookingInput struct {
	UserID        int64  `json:"user_id"`
	FlightID      int64  `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	TravelClass   string `json:"travel_class"`
}

type RecordPaymentInput struct {
	Reference string `json:"reference"`
	ProofPath string `json:"proof_path"`
}

type BookingService struct {
	bookings   repository.BookingRepository
	flights    repository.FlightRepository
	policy     Policy
	dispatcher *Dispatcher
	producer   Producer
	topic      string
	locks      *keyedMutex
}

type BookingServiceOption func(*BookingService)

// WithCreatedEventsTopic enables booking_created events on the given topic.
func WithCreatedEventsTopic(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	dispatcher *Dispatcher,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:   bookings,
		flights:    flights,
		dispatcher: dispatcher,
		locks:      newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerName == "" {
		return nil, fmt.Errorf("%w: passenger name is required", ErrValidation)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	class, err := domain.ParseTravelClass(input.TravelClass)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	price, err := flight.PriceFor(class)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	booking := &domain.Booking{
		UserID:           input.UserID,
		FlightID:         input.FlightID,
		PassengerName:    input.PassengerName,
		Email:            input.Email,
		Phone:            input.Phone,
		TravelClass:      class,
		TicketPriceCents: price,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.publishCreated(ctx, booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %d: %v", booking.ID, err)
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// RecordPayment attaches payment evidence to a booking. The proof is
// mandatory; a missing reference is auto-generated. When the booking is
// still PENDING the attached evidence derives a PENDING_PAYMENT transition,
// with its side effects, through the same policy the admin path uses.
func (s *BookingService) RecordPayment(ctx context.Context, id int64, input RecordPaymentInput) (*domain.Booking, error) {
	if input.ProofPath == "" {
		return nil, fmt.Errorf("%w: proof of payment is required", ErrValidation)
	}
	reference := input.Reference
	if reference == "" {
		reference = generatePaymentReference()
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdatePayment(ctx, id, reference, input.ProofPath)
	if err != nil {
		return nil, err
	}

	realized, changed := s.policy.RealizeEvidence(current.Status, updated.HasPaymentEvidence())
	if !changed {
		return updated, nil
	}
	updated, err = s.bookings.UpdateStatus(ctx, id, realized, nil)
	if err != nil {
		return nil, err
	}
	s.dispatcher.OnTransition(updated, current.Status)
	return updated, nil
}

// ChangeStatus is the admin path: the requested status is committed
// verbatim after validation, with the equality short-circuit. The decline
// reason is persisted only when declining; earlier reasons are retained on
// other transitions (last decline reason wins).
func (s *BookingService) ChangeStatus(ctx context.Context, id int64, status, declineReason string) (*domain.Booking, error) {
	requested, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	realized, changed := s.policy.RealizeAdmin(current.Status, requested)
	if !changed {
		return current, nil
	}

	var reason *string
	if realized == domain.BookingStatusDeclined && declineReason != "" {
		reason = &declineReason
	}
	updated, err := s.bookings.UpdateStatus(ctx, id, realized, reason)
	if err != nil {
		return nil, err
	}
	s.dispatcher.OnTransition(updated, current.Status)
	return updated, nil
}

// GetReceipt returns the booking's receipt path, generating and storing it
// on demand for a paid booking whose receipt is not there yet.
func (s *BookingService) GetReceipt(ctx context.Context, id int64) (string, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if booking.ReceiptPath != "" {
		return booking.ReceiptPath, nil
	}
	if booking.Status != domain.BookingStatusPaid && booking.Status != domain.BookingStatusCompleted {
		return "", fmt.Errorf("%w: receipt is only available for paid bookings", ErrValidation)
	}
	updated, err := s.dispatcher.EnsureReceipt(ctx, booking)
	if err != nil {
		return "", err
	}
	return updated.ReceiptPath, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) publishCreated(ctx context.Context, booking *domain.Booking) error {
	if s.producer == nil || s.topic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       "booking_created",
		BookingID:  booking.ID,
		FlightID:   booking.FlightID,
		Email:      booking.Email,
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	}
	return s.producer.Publish(ctx, s.topic, eventKey(booking.ID), event)
}

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generatePaymentReference builds a TX-<6 alphanumerics>-<unix> reference
// for uploads that arrive without one.
func generatePaymentReference() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = referenceCharset[rand.Intn(len(referenceCharset))]
	}
	return fmt.Sprintf("TX-%s-%d", code, time.Now().Unix())
}

func eventKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

var _ BookingUseCase = (*BookingService)(nil)
