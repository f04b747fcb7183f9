package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"cricturf/internal/domain"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		booking *domain.Booking
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			booking: &domain.Booking{
				VenueID:       "main",
				Date:          "2026-09-01",
				TimeSlotID:    "06-07",
				CustomerName:  "Rahul Dravid",
				Phone:         "9876543210",
				Email:         "thewall@india.com",
				Status:        domain.StatusConfirmed,
				Amount:        1200,
				PaymentMethod: "Cash at Venue",
				CreatedAt:     time.Date(2026, 9, 1, 6, 20, 0, 0, time.UTC),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WithArgs(sqlmock.AnyArg(), "main", "2026-09-01", "06-07",
						"Rahul Dravid", "9876543210", "thewall@india.com",
						"Confirmed", 1200, "Cash at Venue", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unique violation returns ErrSlotTaken",
			booking: &domain.Booking{
				VenueID:    "main",
				Date:       "2026-09-01",
				TimeSlotID: "06-07",
				Status:     domain.StatusConfirmed,
				Amount:     1200,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrSlotTaken,
		},
		{
			name: "db error",
			booking: &domain.Booking{
				VenueID:    "main",
				Date:       "2026-09-01",
				TimeSlotID: "06-07",
				Amount:     1200,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.Create(ctx, tt.booking)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, tt.booking.ID, "create must assign an id")
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			id:   "booking-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings`).
					WithArgs("booking-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "zero rows affected returns ErrNotFound",
			id:   "nonexistent",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings`).
					WithArgs("nonexistent").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "booking-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ListFromDate(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "venue_id", "date", "time_slot_id", "customer_name",
		"phone", "email", "status", "amount", "payment_method", "created_at"}
	createdAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WithArgs("2026-08-25").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("b1", "main", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "06-07",
				"Rahul Dravid", "9876543210", "thewall@india.com",
				"Confirmed", 1200, "Cash at Venue", createdAt).
			AddRow("b2", "nets", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), "18-19",
				"MS Dhoni", "9876500000", "captain@cool.com",
				"Confirmed", 400, "PhonePe", createdAt))

	repo := NewBookingRepository(db)
	bookings, err := repo.ListFromDate(ctx, "2026-08-25")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.Equal(t, "2026-09-01", bookings[0].Date)
	require.Equal(t, domain.StatusConfirmed, bookings[0].Status)
	require.Equal(t, 1200, bookings[0].Amount)
	require.Equal(t, "2026-09-02", bookings[1].Date)
	require.NoError(t, mock.ExpectationsWereMet())
}
