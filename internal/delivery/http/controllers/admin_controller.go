package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"cricturf/internal/delivery/http/helpers"
	"cricturf/internal/domain"
)

type AdminController struct {
	Logger   *slog.Logger
	Admin    domain.AdminService
	Bookings domain.BookingService
}

func NewAdminController(logger *slog.Logger, admin domain.AdminService, bookings domain.BookingService) *AdminController {
	return &AdminController{
		Logger:   logger,
		Admin:    admin,
		Bookings: bookings,
	}
}

// AdminLoginRequest is the request body for POST /admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (a AdminLoginRequest) Validate() []string {
	if a.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// AdminLoginResponse is the data payload for POST /admin/login (200).
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// AdminLoginSuccessResponse is the success response envelope for POST /admin/login (200).
type AdminLoginSuccessResponse struct {
	Data  AdminLoginResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Login godoc
// @Summary Admin login
// @Description Exchanges the shared admin password for a session token. The token goes in the Authorization header (Bearer) on admin requests.
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body AdminLoginRequest true "Admin password"
// @Success 200 {object} controllers.AdminLoginSuccessResponse "data contains the session token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Admin.Login(req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AdminLoginResponse{Token: token})
}

// ListBookingsResponse is the data payload for GET /admin/bookings (200).
// Revenue is the sum of amounts across Confirmed bookings only.
type ListBookingsResponse struct {
	Bookings []*domain.Booking `json:"bookings"`
	Revenue  int               `json:"revenue"`
}

// ListBookingsSuccessResponse is the success response envelope for GET /admin/bookings (200).
type ListBookingsSuccessResponse struct {
	Data  ListBookingsResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListBookings godoc
// @Summary List all bookings
// @Description Returns every booking, newest first, with total revenue (sum of Confirmed booking amounts). Requires an admin session token.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListBookingsSuccessResponse "data contains bookings and revenue"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/bookings [get]
func (c *AdminController) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Bookings.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	revenue := 0
	for _, b := range bookings {
		if b.Status == domain.StatusConfirmed {
			revenue += b.Amount
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListBookingsResponse{Bookings: bookings, Revenue: revenue})
}

// CancelBookingResponse is the data payload for DELETE /admin/bookings/{bookingID} (200).
type CancelBookingResponse struct {
	Status string `json:"status"`
}

// CancelBookingSuccessResponse is the success response envelope for DELETE /admin/bookings/{bookingID} (200).
type CancelBookingSuccessResponse struct {
	Data  CancelBookingResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Deletes the booking. The live change feed propagates the removal to every connected client, freeing the slot. Requires an admin session token.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} controllers.CancelBookingSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/bookings/{bookingID} [delete]
func (c *AdminController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingID")
	if bookingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bookingID")
		return
	}
	if err := c.Bookings.Cancel(r.Context(), bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "booking not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CancelBookingResponse{Status: "cancelled"})
}
