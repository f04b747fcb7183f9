package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cricturf/internal/delivery/http/helpers"
	"cricturf/internal/domain"
	"cricturf/internal/services"
)

// PaymentSelection is the payment part of a booking request. Method is one of
// upi, qr, card, cash. UPIApp is required only when method is upi.
type PaymentSelection struct {
	Method string `json:"method"`
	UPIApp string `json:"upi_app,omitempty"`
}

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	VenueID      string           `json:"venue_id"`
	Date         string           `json:"date"`
	TimeSlotID   string           `json:"time_slot_id"`
	CustomerName string           `json:"customer_name"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	Payment      PaymentSelection `json:"payment"`
}

// Validate implements Validator. Contact and payment details get finer-grained
// per-field validation downstream; here only the slot reference is checked.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.VenueID == "" {
		errs = append(errs, "venue_id is required")
	}
	if c.TimeSlotID == "" {
		errs = append(errs, "time_slot_id is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(domain.DateLayout, c.Date); err != nil {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	return errs
}

// CreateBookingSuccessResponse is the success response envelope for POST /bookings (201).
type CreateBookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a slot
// @Description Reserves a (venue, date, time slot) for the customer and processes payment. On success the booking is Confirmed and a confirmation email is sent. If another customer confirmed the same slot first, returns 409 with error.code slot_taken. If the slot's booking window has passed, returns 409 with error.code slot_passed.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Slot, contact details, and payment method"
// @Success 201 {object} controllers.CreateBookingSuccessResponse "data contains the confirmed booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (error.fields has per-field messages when details are invalid)"
// @Failure 409 {object} helpers.APIResponse "error.code: slot_taken or slot_passed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	kind, err := domain.ParsePaymentKind(req.Payment.Method)
	if err != nil {
		helpers.WriteJSONFieldErrors(w, map[string]string{"payment.method": err.Error()})
		return
	}

	booking, err := c.Service.Reserve(r.Context(), domain.Reservation{
		VenueID:      req.VenueID,
		Date:         req.Date,
		TimeSlotID:   req.TimeSlotID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Payment:      domain.PaymentMethod{Kind: kind, UPIApp: req.Payment.UPIApp},
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			helpers.WriteJSONFieldErrors(w, verr.Fields)
			return
		}
		if errors.Is(err, domain.ErrSlotTaken) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSlotTaken,
				"this slot was just booked by someone else, please pick another")
			return
		}
		if errors.Is(err, domain.ErrSlotPassed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSlotPassed,
				"this slot is no longer bookable")
			return
		}
		if errors.Is(err, domain.ErrUnknownVenue) || errors.Is(err, domain.ErrUnknownSlot) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}
