package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for booking operations.
var (
	// ErrNotFound indicates the requested booking does not exist.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken indicates another Confirmed booking already holds the same
	// (venue, date, time slot). The storage layer's uniqueness constraint is
	// the only safety net against two clients racing for one slot.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrSlotPassed indicates the slot's booking cutoff has elapsed.
	ErrSlotPassed = errors.New("slot no longer bookable")
	// ErrUnknownVenue and ErrUnknownSlot are caller errors: the catalog is
	// static, so an unknown id means a bug upstream.
	ErrUnknownVenue = errors.New("unknown venue")
	ErrUnknownSlot  = errors.New("unknown time slot")
)

// BookingStatus is the status of a booking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// DateLayout is the calendar-date format used throughout: ISO 8601 in local
// wall-clock terms. Dates must be built from local date components, never
// from a UTC-shifted timestamp, to avoid off-by-one-day errors near midnight.
const DateLayout = "2006-01-02"

// Booking represents a reserved (venue, date, time slot) with customer and
// payment details. Amount is the venue's hourly price snapshotted at booking
// time, not re-derived later.
// swagger:model Booking
type Booking struct {
	ID            string        `json:"id"`
	VenueID       string        `json:"venue_id"`
	Date          string        `json:"date"`
	TimeSlotID    string        `json:"time_slot_id"`
	CustomerName  string        `json:"customer_name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Status        BookingStatus `json:"status"`
	Amount        int           `json:"amount"`
	PaymentMethod string        `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Reservation is the input to a booking attempt: the slot to reserve, the
// customer's contact details, and the chosen payment method.
type Reservation struct {
	VenueID      string
	Date         string
	TimeSlotID   string
	CustomerName string
	Phone        string
	Email        string
	Payment      PaymentMethod
}

// EventAction is the kind of change carried by a BookingEvent.
type EventAction string

const (
	EventInsert EventAction = "insert"
	EventUpdate EventAction = "update"
	EventDelete EventAction = "delete"
)

// BookingEvent is one change pushed by the store's live feed. Insert and
// update events carry the full record; delete events carry only the id.
// Delivery may be out of order or duplicated relative to the initial seed
// query, so consumers must apply events idempotently.
type BookingEvent struct {
	Action  EventAction
	ID      string
	Booking *Booking
}

// BookingRepository defines the interface for durable booking storage.
// Create must fail with ErrSlotTaken when a Confirmed booking already exists
// for the same (venue_id, date, time_slot_id).
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id string) error
	ListFromDate(ctx context.Context, date string) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)
}

// BookingFeed is a live subscription to booking changes. Events returns the
// feed channel; Close releases the subscription and eventually closes the
// channel.
type BookingFeed interface {
	Events() <-chan BookingEvent
	Close() error
}

// BookingService defines the business logic for reserving and cancelling
// bookings.
type BookingService interface {
	Reserve(ctx context.Context, res Reservation) (*Booking, error)
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Booking, error)
}
