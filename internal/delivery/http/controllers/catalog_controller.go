package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cricturf/internal/catalog"
	"cricturf/internal/delivery/http/helpers"
	"cricturf/internal/domain"
	"cricturf/internal/services"
)

type CatalogController struct {
	Logger       *slog.Logger
	Availability *services.AvailabilityService
}

func NewCatalogController(logger *slog.Logger, availability *services.AvailabilityService) *CatalogController {
	return &CatalogController{
		Logger:       logger,
		Availability: availability,
	}
}

// ListVenuesSuccessResponse is the success response envelope for GET /venues (200).
type ListVenuesSuccessResponse struct {
	Data  []domain.Venue    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListVenues godoc
// @Summary List venues
// @Description Returns the fixed venue catalog in display order.
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.ListVenuesSuccessResponse "data is an array of venues"
// @Router /venues [get]
func (c *CatalogController) ListVenues(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, catalog.Venues())
}

// SlotGroup is one period's slots for GET /slots.
type SlotGroup struct {
	Period domain.Period     `json:"period"`
	Slots  []domain.TimeSlot `json:"slots"`
}

// ListSlotsSuccessResponse is the success response envelope for GET /slots (200).
type ListSlotsSuccessResponse struct {
	Data  []SlotGroup       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSlots godoc
// @Summary List time slots
// @Description Returns the fixed time-slot catalog grouped by period (Morning, Evening, Night) in display order.
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.ListSlotsSuccessResponse "data is an array of period groups"
// @Router /slots [get]
func (c *CatalogController) ListSlots(w http.ResponseWriter, r *http.Request) {
	groups := make([]SlotGroup, 0, len(catalog.Periods))
	for _, p := range catalog.Periods {
		groups = append(groups, SlotGroup{Period: p, Slots: catalog.SlotsByPeriod(p)})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// SlotAvailabilityEntry is one slot's status in the availability sheet.
type SlotAvailabilityEntry struct {
	ID     string              `json:"id"`
	Label  string              `json:"label"`
	Period domain.Period       `json:"period"`
	Status services.SlotStatus `json:"status"`
}

// AvailabilityResponse is the data payload for GET /availability (200).
type AvailabilityResponse struct {
	VenueID string                  `json:"venue_id"`
	Date    string                  `json:"date"`
	Slots   []SlotAvailabilityEntry `json:"slots"`
}

// AvailabilitySuccessResponse is the success response envelope for GET /availability (200).
type AvailabilitySuccessResponse struct {
	Data  AvailabilityResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetAvailability godoc
// @Summary Get slot availability for a venue and date
// @Description Returns every catalog slot with its status (available, booked, past_cutoff) for the given venue and date. Statuses come from the in-memory replica of confirmed bookings and the current local time; a booked slot reports booked even when its time has also passed.
// @Tags catalog
// @Produce json
// @Param venue query string true "Venue ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.AvailabilitySuccessResponse "data contains the per-slot statuses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /availability [get]
func (c *CatalogController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	venueID := r.URL.Query().Get("venue")
	date := r.URL.Query().Get("date")
	if venueID == "" || date == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venue and date query params are required")
		return
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	sheet, err := c.Availability.DaySheet(venueID, date)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownVenue) || errors.Is(err, domain.ErrUnknownSlot) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	entries := make([]SlotAvailabilityEntry, 0, len(sheet))
	for _, s := range sheet {
		entries = append(entries, SlotAvailabilityEntry{
			ID:     s.Slot.ID,
			Label:  s.Slot.Label,
			Period: s.Slot.Period,
			Status: s.Status,
		})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResponse{VenueID: venueID, Date: date, Slots: entries})
}
