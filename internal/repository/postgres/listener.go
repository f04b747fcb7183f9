package postgres

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"cricturf/internal/domain"
)

// notifyChannel is the Postgres NOTIFY channel the booking trigger fires on
// every insert, update, and delete (see migrations).
const notifyChannel = "bookings_changes"

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
)

// Feed is a live subscription to booking changes, backed by a pq.Listener on
// the bookings_changes channel. It implements domain.BookingFeed. The feed is
// at-least-once and carries no sequence numbers; consumers must apply events
// idempotently.
type Feed struct {
	listener *pq.Listener
	events   chan domain.BookingEvent
	logger   *slog.Logger
}

// NewFeed opens a dedicated listening connection and starts relaying
// notifications. Callers must Close the feed on shutdown to release the
// connection.
func NewFeed(connStr string, logger *slog.Logger) (*Feed, error) {
	listener := pq.NewListener(connStr, listenerMinReconnect, listenerMaxReconnect,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("booking feed listener event", "event", int(ev), "err", err)
			}
		})
	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen on %s: %w", notifyChannel, err)
	}

	f := &Feed{
		listener: listener,
		events:   make(chan domain.BookingEvent, 64),
		logger:   logger,
	}
	go f.run()
	return f, nil
}

// Events returns the feed channel. It is closed after Close.
func (f *Feed) Events() <-chan domain.BookingEvent {
	return f.events
}

// Close unlistens and releases the underlying connection.
func (f *Feed) Close() error {
	return f.listener.Close()
}

func (f *Feed) run() {
	defer close(f.events)
	for n := range f.listener.Notify {
		// A nil notification marks a reconnect; events during the gap are
		// lost, which the replica tolerates as staleness until reseed.
		if n == nil {
			f.logger.Warn("booking feed reconnected, events may have been missed")
			continue
		}
		ev, err := parseNotification([]byte(n.Extra))
		if err != nil {
			f.logger.Warn("dropping malformed booking notification", "err", err)
			continue
		}
		f.events <- ev
	}
}

// notification is the JSON payload built by the notify_booking_change
// trigger: {action, record} for insert/update, {action, id} for delete.
type notification struct {
	Action string      `json:"action"`
	ID     string      `json:"id"`
	Record *bookingRow `json:"record"`
}

// bookingRow mirrors row_to_json output for the bookings table.
type bookingRow struct {
	ID            string    `json:"id"`
	VenueID       string    `json:"venue_id"`
	Date          string    `json:"date"`
	TimeSlotID    string    `json:"time_slot_id"`
	CustomerName  string    `json:"customer_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	Amount        int       `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

func parseNotification(payload []byte) (domain.BookingEvent, error) {
	var n notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return domain.BookingEvent{}, fmt.Errorf("unmarshal payload: %w", err)
	}

	switch domain.EventAction(n.Action) {
	case domain.EventInsert, domain.EventUpdate:
		if n.Record == nil || n.Record.ID == "" {
			return domain.BookingEvent{}, fmt.Errorf("%s event without record", n.Action)
		}
		b := n.Record.toDomain()
		return domain.BookingEvent{Action: domain.EventAction(n.Action), ID: b.ID, Booking: b}, nil
	case domain.EventDelete:
		// A delete without its key is a degraded event; the caller logs and
		// drops it rather than crashing the cache.
		if n.ID == "" {
			return domain.BookingEvent{}, fmt.Errorf("delete event without id")
		}
		return domain.BookingEvent{Action: domain.EventDelete, ID: n.ID}, nil
	default:
		return domain.BookingEvent{}, fmt.Errorf("unknown action %q", n.Action)
	}
}

func (r *bookingRow) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:            r.ID,
		VenueID:       r.VenueID,
		Date:          r.Date,
		TimeSlotID:    r.TimeSlotID,
		CustomerName:  r.CustomerName,
		Phone:         r.Phone,
		Email:         r.Email,
		Status:        domain.BookingStatus(r.Status),
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
	}
}
