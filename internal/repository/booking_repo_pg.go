package repository

import (
	"context"
	"errors"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBookingNotFound = errors.New("booking not found")

const bookingColumns = `id, user_id, flight_id, passenger_name, email, phone, travel_class,
	ticket_price_cents, status, COALESCE(payment_reference, ''), COALESCE(payment_proof_path, ''),
	COALESCE(decline_reason, ''), COALESCE(receipt_path, ''), created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	// UpdateStatus sets the status and, when declineReason is non-nil, the
	// decline reason. A nil declineReason leaves the stored reason untouched.
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, declineReason *string) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, id int64, reference, proofPath string) (*domain.Booking, error)
	// UpdateReceipt stores the receipt path only if none is stored yet and
	// returns the booking as persisted, keeping the first path on conflict.
	UpdateReceipt(ctx context.Context, id int64, receiptPath string) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, passenger_name, email, phone, travel_class, ticket_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.FlightID, booking.PassengerName, booking.Email, booking.Phone,
		booking.TravelClass, booking.TicketPriceCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, declineReason *string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings
		SET status=$1, decline_reason=COALESCE($2, decline_reason), updated_at=now()
		WHERE id=$3
		RETURNING `+bookingColumns, status, declineReason, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) UpdatePayment(ctx context.Context, id int64, reference, proofPath string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings
		SET payment_reference=$1, payment_proof_path=$2, updated_at=now()
		WHERE id=$3
		RETURNING `+bookingColumns, reference, proofPath, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) UpdateReceipt(ctx context.Context, id int64, receiptPath string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings
		SET receipt_path=$1, updated_at=now()
		WHERE id=$2 AND (receipt_path IS NULL OR receipt_path='')
		RETURNING `+bookingColumns, receiptPath, id)
	b, err := scanBooking(row)
	if errors.Is(err, ErrBookingNotFound) {
		// Either the booking is gone or a receipt is already stored; the
		// re-read tells the two apart and returns the winning path.
		return r.GetByID(ctx, id)
	}
	return b, err
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.PassengerName, &b.Email, &b.Phone,
		&b.TravelClass, &b.TicketPriceCents, &b.Status, &b.PaymentReference, &b.PaymentProofPath,
		&b.DeclineReason, &b.ReceiptPath, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
