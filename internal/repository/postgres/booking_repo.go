package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cricturf/internal/domain"
)

const bookingColumns = `id, venue_id, date, time_slot_id, customer_name, phone, email, status, amount, payment_method, created_at`

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{DB: db}
}

// Create inserts the booking and assigns it a fresh id. The partial unique
// index on (venue_id, date, time_slot_id) for Confirmed rows is what
// enforces the no-double-booking invariant; a violation surfaces as
// domain.ErrSlotTaken.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	query := `
		INSERT INTO bookings (id, venue_id, date, time_slot_id, customer_name, phone, email, status, amount, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.VenueID, b.Date, b.TimeSlotID,
		b.CustomerName, b.Phone, b.Email,
		string(b.Status), b.Amount, b.PaymentMethod, b.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListFromDate returns all bookings with date >= the given calendar date.
// Used for the replica cache's bounded seed query.
func (r *bookingRepository) ListFromDate(ctx context.Context, date string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date >= $1
		ORDER BY date, time_slot_id
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(rows *sql.Rows) (*domain.Booking, error) {
	b := &domain.Booking{}
	var date time.Time
	var status string
	if err := rows.Scan(
		&b.ID, &b.VenueID, &date, &b.TimeSlotID,
		&b.CustomerName, &b.Phone, &b.Email,
		&status, &b.Amount, &b.PaymentMethod, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	// DATE columns carry no time component; formatting the scanned value
	// preserves the stored calendar date regardless of session timezone.
	b.Date = date.Format(domain.DateLayout)
	b.Status = domain.BookingStatus(status)
	return b, nil
}
