package events

import (
	"sync"
	"time"
)

// ReservationCreated is published once per booked (area, date) pair after a
// reservation commits. SpotsAfter is the ledger value the coordinator
// observed after its own decrement; consumers use it as the idempotency
// reference.
type ReservationCreated struct {
	ReservationID int64     `json:"reservation_id"`
	AreaID        int64     `json:"area_id"`
	Date          time.Time `json:"date"`
	SpotsAfter    int       `json:"spots_after"`
}

const subscriberBuffer = 64

// Bus is an in-process fire-and-forget fan-out. Publish never blocks: a
// subscriber whose buffer is full loses the event, which is acceptable
// because every consumer is a reconciliation path, not the authority.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan ReservationCreated
	closed bool
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe() <-chan ReservationCreated {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ReservationCreated, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Bus) Publish(ev ReservationCreated) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
