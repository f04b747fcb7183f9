package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cricturf/internal/catalog"
	"cricturf/internal/clock"
	"cricturf/internal/domain"
)

type bookingService struct {
	repo           domain.BookingRepository
	availability   *AvailabilityService
	email          domain.EmailService
	clk            clock.Clock
	sleeper        clock.Sleeper
	phases         ProcessingPhases
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService wires the reservation workflow, the availability engine,
// and the booking store into the domain.BookingService API.
func NewBookingService(repo domain.BookingRepository, availability *AvailabilityService,
	email domain.EmailService, clk clock.Clock, sleeper clock.Sleeper,
	phases ProcessingPhases, logger *slog.Logger, timeout time.Duration) domain.BookingService {
	return &bookingService{
		repo:           repo,
		availability:   availability,
		email:          email,
		clk:            clk,
		sleeper:        sleeper,
		phases:         phases,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Reserve drives a fresh workflow through all its steps with the complete
// reservation payload. Each transition's refusal surfaces unchanged so the
// delivery layer can map it (validation vs. conflict vs. elapsed slot).
func (s *bookingService) Reserve(ctx context.Context, res domain.Reservation) (*domain.Booking, error) {
	wf := NewWorkflow(s.availability, s.repo, s.clk, s.sleeper, s.phases, s.logger)

	if err := wf.SelectSlot(res.VenueID, res.Date, res.TimeSlotID); err != nil {
		return nil, err
	}
	if err := wf.SubmitDetails(ContactDetails{
		Name:  res.CustomerName,
		Phone: res.Phone,
		Email: res.Email,
	}); err != nil {
		return nil, err
	}
	booking, err := wf.SubmitPayment(ctx, res.Payment)
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, booking)
	return booking, nil
}

// sendConfirmation is best-effort: a failed email never fails the booking.
func (s *bookingService) sendConfirmation(ctx context.Context, b *domain.Booking) {
	if s.email == nil {
		return
	}
	data := &domain.BookingConfirmedEmailData{
		CustomerName:  b.CustomerName,
		Date:          b.Date,
		Amount:        b.Amount,
		PaymentMethod: b.PaymentMethod,
		BookingID:     b.ID,
	}
	if venue, ok := catalog.VenueByID(b.VenueID); ok {
		data.VenueName = venue.Name
	}
	if slot, ok := catalog.SlotByID(b.TimeSlotID); ok {
		data.SlotLabel = slot.Label
	}
	err := s.email.SendBookingConfirmed(ctx, b.Email, data)
	if err != nil {
		s.logger.Warn("booking confirmation email failed", "booking_id", b.ID, "err", err)
	}
}

// Cancel hard-deletes the booking. The live feed's delete event removes it
// from every client's replica, freeing the slot.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (s *bookingService) List(ctx context.Context) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
