// Package catalog holds the fixed venue and time-slot reference data.
// Both lists are compiled-in configuration, defined at process start and
// never mutated.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"cricturf/internal/domain"
)

var venues = []domain.Venue{
	{
		ID:       "main",
		Name:     "Main Stadium Ground",
		Category: "Full Pitch",
		Price:    1200,
		Image:    "https://images.unsplash.com/photo-1531415074968-036ba1b575da?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID:       "nets",
		Name:     "Pro Practice Nets",
		Category: "Nets",
		Price:    400,
		Image:    "https://images.unsplash.com/photo-1593341646271-ec60d00552b9?auto=format&fit=crop&q=80&w=1000",
	},
}

var slots = []domain.TimeSlot{
	{ID: "06-07", Label: "06:00 AM - 07:00 AM", Period: domain.PeriodMorning},
	{ID: "07-08", Label: "07:00 AM - 08:00 AM", Period: domain.PeriodMorning},
	{ID: "08-09", Label: "08:00 AM - 09:00 AM", Period: domain.PeriodMorning},
	{ID: "16-17", Label: "04:00 PM - 05:00 PM", Period: domain.PeriodEvening},
	{ID: "17-18", Label: "05:00 PM - 06:00 PM", Period: domain.PeriodEvening},
	{ID: "18-19", Label: "06:00 PM - 07:00 PM", Period: domain.PeriodNight},
	{ID: "19-20", Label: "07:00 PM - 08:00 PM", Period: domain.PeriodNight},
	{ID: "20-21", Label: "08:00 PM - 09:00 PM", Period: domain.PeriodNight},
}

// Periods lists the period tags in display order.
var Periods = []domain.Period{domain.PeriodMorning, domain.PeriodEvening, domain.PeriodNight}

var (
	venueByID map[string]domain.Venue
	slotByID  map[string]domain.TimeSlot
)

func init() {
	venueByID = make(map[string]domain.Venue, len(venues))
	for _, v := range venues {
		venueByID[v.ID] = v
	}
	slotByID = make(map[string]domain.TimeSlot, len(slots))
	for i := range slots {
		h, m, err := parseStart(slots[i].Label)
		if err != nil {
			// Static data; a bad label is a programmer error.
			panic(fmt.Sprintf("catalog: slot %s: %v", slots[i].ID, err))
		}
		slots[i].StartHour = h
		slots[i].StartMinute = m
		slotByID[slots[i].ID] = slots[i]
	}
}

// parseStart extracts the slot's start wall-clock time from its display
// label, e.g. "06:00 AM - 07:00 AM". 12-hour times with an AM/PM modifier:
// a 12 hour with PM stays 12, a 12 hour with AM becomes 0.
func parseStart(label string) (hour, minute int, err error) {
	start, _, ok := strings.Cut(label, " - ")
	if !ok {
		return 0, 0, fmt.Errorf("label %q has no time range", label)
	}
	t, err := time.Parse("03:04 PM", strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("parse start time of %q: %w", label, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Venues returns the venue list in catalog order.
func Venues() []domain.Venue {
	out := make([]domain.Venue, len(venues))
	copy(out, venues)
	return out
}

// Slots returns the time-slot list in catalog order.
func Slots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(slots))
	copy(out, slots)
	return out
}

// VenueByID looks up a venue by id.
func VenueByID(id string) (domain.Venue, bool) {
	v, ok := venueByID[id]
	return v, ok
}

// SlotByID looks up a time slot by id.
func SlotByID(id string) (domain.TimeSlot, bool) {
	s, ok := slotByID[id]
	return s, ok
}

// SlotsByPeriod returns the slots tagged with the given period, in catalog order.
func SlotsByPeriod(p domain.Period) []domain.TimeSlot {
	var out []domain.TimeSlot
	for _, s := range slots {
		if s.Period == p {
			out = append(out, s)
		}
	}
	return out
}
