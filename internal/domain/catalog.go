package domain

// Period tags a time slot with its part of the day.
type Period string

const (
	PeriodMorning Period = "Morning"
	PeriodEvening Period = "Evening"
	PeriodNight   Period = "Night"
)

// Venue is a bookable turf with a flat hourly price. Catalog-defined and
// immutable for the process lifetime.
// swagger:model Venue
type Venue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
}

// TimeSlot is a fixed one-hour window on any day. The display label encodes
// the wall-clock range; StartHour and StartMinute are the structured start
// time derived from it once at catalog load, so cutoff checks never re-parse
// the label.
// swagger:model TimeSlot
type TimeSlot struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Period      Period `json:"period"`
	StartHour   int    `json:"-"`
	StartMinute int    `json:"-"`
}
