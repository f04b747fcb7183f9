package services

import (
	"time"

	"cricturf/internal/catalog"
	"cricturf/internal/clock"
	"cricturf/internal/domain"
)

// SlotStatus is the bookability of one (venue, date, slot).
type SlotStatus string

const (
	SlotAvailable  SlotStatus = "available"
	SlotBooked     SlotStatus = "booked"
	SlotPastCutoff SlotStatus = "past_cutoff"
)

// bookingGrace is how long past a slot's nominal start it stays bookable.
// Walk-in customers may book shortly after a slot begins; beyond the grace
// window the slot has substantially elapsed.
const bookingGrace = 30 * time.Minute

// BookingIndex answers whether a Confirmed booking holds a slot. The replica
// cache implements it.
type BookingIndex interface {
	IsBooked(venueID, date, slotID string) bool
}

// AvailabilityService decides per-slot bookability from the replica cache
// snapshot and the current local wall-clock time. It has no side effects.
type AvailabilityService struct {
	index BookingIndex
	clk   clock.Clock
}

func NewAvailabilityService(index BookingIndex, clk clock.Clock) *AvailabilityService {
	return &AvailabilityService{index: index, clk: clk}
}

// Check returns the status of one slot. Unknown venue or slot ids are caller
// errors (the catalog is static). An already-booked slot reports SlotBooked
// even when its cutoff has also passed.
func (s *AvailabilityService) Check(venueID, date, slotID string) (SlotStatus, error) {
	if _, ok := catalog.VenueByID(venueID); !ok {
		return "", domain.ErrUnknownVenue
	}
	slot, ok := catalog.SlotByID(slotID)
	if !ok {
		return "", domain.ErrUnknownSlot
	}

	if s.index.IsBooked(venueID, date, slotID) {
		return SlotBooked, nil
	}
	if s.pastCutoff(slot, date) {
		return SlotPastCutoff, nil
	}
	return SlotAvailable, nil
}

// pastCutoff compares in local wall-clock terms. The calendar date is
// compared as date components, never through a UTC-shifted timestamp, so the
// answer cannot be off by a day near midnight.
func (s *AvailabilityService) pastCutoff(slot domain.TimeSlot, date string) bool {
	now := s.clk.Now()
	today := now.Format(domain.DateLayout)
	if date < today {
		return true
	}
	if date > today {
		return false
	}
	slotStart := time.Date(now.Year(), now.Month(), now.Day(),
		slot.StartHour, slot.StartMinute, 0, 0, now.Location())
	return now.After(slotStart.Add(bookingGrace))
}

// SlotAvailability pairs a catalog slot with its status for one venue and date.
type SlotAvailability struct {
	Slot   domain.TimeSlot
	Status SlotStatus
}

// DaySheet returns the status of every catalog slot for a venue and date, in
// catalog order. Backs the booking grid.
func (s *AvailabilityService) DaySheet(venueID, date string) ([]SlotAvailability, error) {
	if _, ok := catalog.VenueByID(venueID); !ok {
		return nil, domain.ErrUnknownVenue
	}
	slots := catalog.Slots()
	sheet := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		status, err := s.Check(venueID, date, slot.ID)
		if err != nil {
			return nil, err
		}
		sheet = append(sheet, SlotAvailability{Slot: slot, Status: status})
	}
	return sheet, nil
}
