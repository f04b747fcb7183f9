// Package replica keeps an in-memory, read-mostly mirror of the booking
// store. It is seeded by a bounded initial query and kept current by
// applying the store's live change feed. The durable store remains the sole
// source of truth; the cache converges to it as events arrive.
package replica

import (
	"context"
	"log/slog"
	"sync"

	"cricturf/internal/domain"
)

// Cache mirrors bookings keyed by id. Events and the seed query may race:
// the subscription is opened before the seed completes, so an event can
// arrive for a record the seed also returns, in either order. The cache
// applies last-write-wins by arrival order, with the one exception that seed
// data never overwrites a record the feed has already touched (the feed is
// strictly newer than the seed snapshot).
type Cache struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Booking
	touched map[string]struct{}
	logger  *slog.Logger
}

// New returns an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		byID:    make(map[string]*domain.Booking),
		touched: make(map[string]struct{}),
		logger:  logger,
	}
}

// Seed merges the initial query result. Records already touched by the feed
// are skipped so a slow seed cannot resurrect a deleted booking or roll back
// an update.
func (c *Cache) Seed(bookings []*domain.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range bookings {
		if b == nil || b.ID == "" {
			continue
		}
		if _, ok := c.touched[b.ID]; ok {
			continue
		}
		cp := *b
		c.byID[b.ID] = &cp
	}
}

// Apply merges one feed event. Inserts and updates are idempotent upserts of
// the event's full payload; deletes remove by id. A delete without an id is
// a degraded event (a store change-capture misconfiguration): it is logged
// and dropped, leaving that one record stale until the next reseed.
func (c *Cache) Apply(ev domain.BookingEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ev.Action {
	case domain.EventInsert, domain.EventUpdate:
		if ev.Booking == nil || ev.Booking.ID == "" {
			c.logger.Warn("dropping booking event without payload", "action", ev.Action)
			return
		}
		cp := *ev.Booking
		c.byID[cp.ID] = &cp
		c.touched[cp.ID] = struct{}{}
	case domain.EventDelete:
		if ev.ID == "" {
			c.logger.Warn("dropping delete event without id")
			return
		}
		delete(c.byID, ev.ID)
		c.touched[ev.ID] = struct{}{}
	default:
		c.logger.Warn("dropping booking event with unknown action", "action", ev.Action)
	}
}

// Run applies feed events until the context is cancelled or the feed channel
// closes.
func (c *Cache) Run(ctx context.Context, feed domain.BookingFeed) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-feed.Events():
			if !ok {
				return
			}
			c.Apply(ev)
		}
	}
}

// IsBooked reports whether a Confirmed booking holds the given
// (venue, date, time slot).
func (c *Cache) IsBooked(venueID, date, slotID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.byID {
		if b.Status == domain.StatusConfirmed &&
			b.VenueID == venueID && b.Date == date && b.TimeSlotID == slotID {
			return true
		}
	}
	return false
}

// Get returns the cached booking with the given id, if present.
func (c *Cache) Get(id string) (*domain.Booking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	cp := *b
	return &cp, true
}

// Len returns the number of cached bookings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
