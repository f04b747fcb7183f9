package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cricturf/internal/catalog"
	"cricturf/internal/clock"
	"cricturf/internal/domain"
)

// WorkflowState is a step of the reservation flow.
type WorkflowState string

const (
	StateSelectingSlot    WorkflowState = "selecting_slot"
	StateCapturingDetails WorkflowState = "capturing_details"
	StateSelectingPayment WorkflowState = "selecting_payment"
	StateProcessing       WorkflowState = "processing"
	StateCommitted        WorkflowState = "committed"
)

// ErrProcessing is returned when a submit arrives while a previous one is
// still processing. The duplicate submit is a no-op: no second write is
// issued.
var ErrProcessing = errors.New("payment already processing")

// ErrBadTransition is returned when a workflow method is called out of order.
var ErrBadTransition = errors.New("invalid workflow transition")

// ValidationError carries per-field messages for the detail capture step.
// The workflow state is unchanged when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid booking details"
}

// ProcessingPhases are the durations of the simulated gateway phases. They
// are cosmetic; the contract is a single durable write after they elapse.
type ProcessingPhases struct {
	Connect  time.Duration
	Verify   time.Duration
	Finalize time.Duration
}

// DefaultPhases mirrors the production pacing of the checkout overlay.
var DefaultPhases = ProcessingPhases{
	Connect:  1200 * time.Millisecond,
	Verify:   1500 * time.Millisecond,
	Finalize: 1500 * time.Millisecond,
}

// ContactDetails are the required customer fields captured in step one.
type ContactDetails struct {
	Name  string
	Phone string
	Email string
}

// Workflow drives one reservation attempt through
// SelectingSlot → CapturingDetails → SelectingPayment → Processing →
// Committed. A failed commit returns to SelectingPayment with the captured
// details intact so the customer can retry without re-entering them; the
// workflow is never left stuck in Processing.
//
// Only the final commit has side effects; every earlier transition is a pure
// state update. The workflow is not reentrant: while Processing, further
// submits are refused with ErrProcessing.
type Workflow struct {
	availability *AvailabilityService
	repo         domain.BookingRepository
	clk          clock.Clock
	sleeper      clock.Sleeper
	phases       ProcessingPhases
	logger       *slog.Logger

	mu      sync.Mutex
	state   WorkflowState
	venue   domain.Venue
	slot    domain.TimeSlot
	date    string
	details ContactDetails
}

// NewWorkflow returns a workflow in SelectingSlot.
func NewWorkflow(availability *AvailabilityService, repo domain.BookingRepository,
	clk clock.Clock, sleeper clock.Sleeper, phases ProcessingPhases, logger *slog.Logger) *Workflow {
	return &Workflow{
		availability: availability,
		repo:         repo,
		clk:          clk,
		sleeper:      sleeper,
		phases:       phases,
		logger:       logger,
		state:        StateSelectingSlot,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectSlot fixes the (venue, date, slot) payload for the rest of the
// workflow. Refused unless the availability engine reports the slot
// Available: a booked slot surfaces ErrSlotTaken, an elapsed one
// ErrSlotPassed.
func (w *Workflow) SelectSlot(venueID, date, slotID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingSlot {
		return ErrBadTransition
	}

	status, err := w.availability.Check(venueID, date, slotID)
	if err != nil {
		return err
	}
	switch status {
	case SlotBooked:
		return domain.ErrSlotTaken
	case SlotPastCutoff:
		return domain.ErrSlotPassed
	}

	venue, _ := catalog.VenueByID(venueID)
	slot, _ := catalog.SlotByID(slotID)
	w.venue = venue
	w.slot = slot
	w.date = date
	w.state = StateCapturingDetails
	return nil
}

// SubmitDetails validates the contact fields and advances to payment
// selection. On validation failure the state is unchanged and per-field
// errors are returned. Allowed again from SelectingPayment so the customer
// can go back and correct details.
func (w *Workflow) SubmitDetails(d ContactDetails) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateCapturingDetails && w.state != StateSelectingPayment {
		return ErrBadTransition
	}

	fields := make(map[string]string)
	if d.Name == "" {
		fields["customer_name"] = "name is required"
	}
	if d.Phone == "" {
		fields["phone"] = "phone is required"
	}
	if d.Email == "" {
		fields["email"] = "email is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	w.details = d
	w.state = StateSelectingPayment
	return nil
}

// SubmitPayment runs the simulated gateway phases and commits the booking.
// A submit while already Processing is a no-op returning ErrProcessing. On
// conflict the slot was concurrently booked by another customer: the
// workflow returns to SelectingPayment and surfaces domain.ErrSlotTaken,
// which callers must present distinctly from a generic failure. Any other
// store error also returns the workflow to SelectingPayment.
func (w *Workflow) SubmitPayment(ctx context.Context, method domain.PaymentMethod) (*domain.Booking, error) {
	w.mu.Lock()
	switch w.state {
	case StateProcessing:
		w.mu.Unlock()
		return nil, ErrProcessing
	case StateSelectingPayment:
	default:
		w.mu.Unlock()
		return nil, ErrBadTransition
	}

	if _, err := domain.ParsePaymentKind(string(method.Kind)); err != nil {
		w.mu.Unlock()
		return nil, &ValidationError{Fields: map[string]string{"payment_method": err.Error()}}
	}
	if method.Kind == domain.PaymentUPI && method.UPIApp == "" {
		w.mu.Unlock()
		return nil, &ValidationError{Fields: map[string]string{"upi_app": "select a UPI app"}}
	}

	w.state = StateProcessing
	booking := &domain.Booking{
		VenueID:       w.venue.ID,
		Date:          w.date,
		TimeSlotID:    w.slot.ID,
		CustomerName:  w.details.Name,
		Phone:         w.details.Phone,
		Email:         w.details.Email,
		Status:        domain.StatusConfirmed,
		Amount:        w.venue.Price,
		PaymentMethod: method.Label(),
		CreatedAt:     w.clk.Now(),
	}
	w.mu.Unlock()

	// The phases run to completion once started; they are not cancellable.
	w.logger.Debug("connecting to secure gateway")
	w.sleeper.Sleep(w.phases.Connect)
	w.logger.Debug("verifying transaction details")
	w.sleeper.Sleep(w.phases.Verify)
	if method.Kind == domain.PaymentCash {
		w.logger.Debug("finalizing booking")
	} else {
		w.logger.Debug("processing secure payment")
	}
	w.sleeper.Sleep(w.phases.Finalize)

	err := w.repo.Create(ctx, booking)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		// Back to payment selection with details retained; never stuck in
		// Processing.
		w.state = StateSelectingPayment
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("commit booking: %w", err)
	}
	w.state = StateCommitted
	return booking, nil
}
