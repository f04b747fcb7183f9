package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricturf/internal/delivery/http/helpers"
	"cricturf/internal/domain"
	"cricturf/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	reserveErr      error
	cancelErr       error
	listErr         error
	bookings        []*domain.Booking
	lastReservation domain.Reservation
	lastCancelID    string
}

func (f *fakeBookingService) Reserve(ctx context.Context, res domain.Reservation) (*domain.Booking, error) {
	f.lastReservation = res
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	return &domain.Booking{
		ID:            "bk-created",
		VenueID:       res.VenueID,
		Date:          res.Date,
		TimeSlotID:    res.TimeSlotID,
		CustomerName:  res.CustomerName,
		Phone:         res.Phone,
		Email:         res.Email,
		Status:        domain.StatusConfirmed,
		Amount:        1200,
		PaymentMethod: res.Payment.Label(),
	}, nil
}

func (f *fakeBookingService) Cancel(ctx context.Context, id string) error {
	f.lastCancelID = id
	return f.cancelErr
}

func (f *fakeBookingService) List(ctx context.Context) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bookings, nil
}

func TestBookingController_CreateBooking(t *testing.T) {
	validBody := `{"venue_id":"main","date":"2026-09-01","time_slot_id":"06-07",` +
		`"customer_name":"Rahul Dravid","phone":"9876543210","email":"rahul@example.com",` +
		`"payment":{"method":"cash"}}`

	tests := []struct {
		name           string
		body           string
		reserveErr     error
		wantStatus     int
		wantErrCode    string
		wantBodySubstr string
		checkBooking   func(t *testing.T, b domain.Booking)
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
			checkBooking: func(t *testing.T, b domain.Booking) {
				assert.Equal(t, "bk-created", b.ID)
				assert.Equal(t, "main", b.VenueID)
				assert.Equal(t, "2026-09-01", b.Date)
				assert.Equal(t, "06-07", b.TimeSlotID)
				assert.Equal(t, domain.StatusConfirmed, b.Status)
				assert.Equal(t, "Cash at Venue", b.PaymentMethod)
			},
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "missing venue",
			body:           `{"date":"2026-09-01","time_slot_id":"06-07","payment":{"method":"cash"}}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "venue_id is required",
		},
		{
			name:           "malformed date",
			body:           `{"venue_id":"main","date":"01/09/2026","time_slot_id":"06-07","payment":{"method":"cash"}}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "YYYY-MM-DD",
		},
		{
			name:           "unsupported payment method",
			body:           `{"venue_id":"main","date":"2026-09-01","time_slot_id":"06-07","payment":{"method":"cheque"}}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "cheque",
		},
		{
			name:           "unknown field rejected",
			body:           `{"venue_id":"main","date":"2026-09-01","time_slot_id":"06-07","payment":{"method":"cash"},"amount":1}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:        "validation error maps to field errors",
			body:        validBody,
			reserveErr:  &services.ValidationError{Fields: map[string]string{"phone": "phone must be 10 digits"}},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "slot taken",
			body:        validBody,
			reserveErr:  domain.ErrSlotTaken,
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeSlotTaken,
		},
		{
			name:        "slot passed",
			body:        validBody,
			reserveErr:  domain.ErrSlotPassed,
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeSlotPassed,
		},
		{
			name:        "unknown venue",
			body:        validBody,
			reserveErr:  domain.ErrUnknownVenue,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "service error",
			body:        validBody,
			reserveErr:  errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{reserveErr: tt.reserveErr}
			ctrl := NewBookingController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "body: %s", rr.Body.String())
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
			if tt.wantErrCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
			if tt.checkBooking != nil {
				var envelope struct {
					Data  domain.Booking    `json:"data"`
					Error *helpers.APIError `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.Nil(t, envelope.Error)
				tt.checkBooking(t, envelope.Data)
			}
		})
	}
}

func TestBookingController_CreateBookingValidationFields(t *testing.T) {
	fake := &fakeBookingService{
		reserveErr: &services.ValidationError{Fields: map[string]string{
			"customer_name": "name is required",
			"email":         "email is required",
		}},
	}
	ctrl := NewBookingController(testLogger, fake)
	body := `{"venue_id":"main","date":"2026-09-01","time_slot_id":"06-07","payment":{"method":"card"}}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	ctrl.CreateBooking(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "name is required", envelope.Error.Fields["customer_name"])
	assert.Equal(t, "email is required", envelope.Error.Fields["email"])
}

func TestBookingController_CreateBookingForwardsPayment(t *testing.T) {
	fake := &fakeBookingService{}
	ctrl := NewBookingController(testLogger, fake)
	body := `{"venue_id":"nets","date":"2026-09-02","time_slot_id":"17-18",` +
		`"customer_name":"Mithali Raj","phone":"9123456780","email":"mithali@example.com",` +
		`"payment":{"method":"upi","upi_app":"PhonePe"}}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	ctrl.CreateBooking(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())
	assert.Equal(t, domain.PaymentUPI, fake.lastReservation.Payment.Kind)
	assert.Equal(t, "PhonePe", fake.lastReservation.Payment.UPIApp)
}
