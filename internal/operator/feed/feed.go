package feed

import (
	"sync"

	"lacque/pkg/model"
)

// ActivityFeed keeps the most recent booking events in memory for the
// operator console. Oldest entries fall off once capacity is reached.
type ActivityFeed struct {
	mu       sync.RWMutex
	events   []model.BookingEvent
	capacity int
}

func NewActivityFeed(capacity int) *ActivityFeed {
	if capacity <= 0 {
		capacity = 1
	}
	return &ActivityFeed{
		events:   make([]model.BookingEvent, 0, capacity),
		capacity: capacity,
	}
}

func (f *ActivityFeed) Add(event model.BookingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.events) == f.capacity {
		copy(f.events, f.events[1:])
		f.events = f.events[:f.capacity-1]
	}
	f.events = append(f.events, event)
}

// Recent returns up to limit events, newest first. limit <= 0 returns all.
func (f *ActivityFeed) Recent(limit int) []model.BookingEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := len(f.events)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]model.BookingEvent, limit)
	for i := 0; i < limit; i++ {
		out[i] = f.events[n-1-i]
	}
	return out
}

func (f *ActivityFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.events)
}
