package reactor

import (
	"context"
	"log"
	"time"

	"cospace/internal/events"
)

// Ledger is the one availability write the reactor is allowed to make.
type Ledger interface {
	ApplyDecrement(ctx context.Context, areaID int64, date time.Time, spotsAfter int) (bool, error)
}

// Reactor reconciles the availability ledger against ReservationCreated
// notifications. The booking coordinator is the authority: its transaction
// already decremented the ledger, so almost every event is a no-op here.
// A decrement is only re-applied when the record shows more spots than the
// coordinator observed, meaning its write was lost.
//
// Errors are logged and the event dropped. This path must never fail a
// booking or retry forever; correctness is enforced synchronously upstream.
type Reactor struct {
	ledger Ledger
}

func New(ledger Ledger) *Reactor {
	return &Reactor{ledger: ledger}
}

// Run consumes events until the channel closes or ctx is cancelled.
func (r *Reactor) Run(ctx context.Context, in <-chan events.ReservationCreated) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			r.Handle(ctx, ev)
		}
	}
}

// Handle processes one notification.
func (r *Reactor) Handle(ctx context.Context, ev events.ReservationCreated) {
	applied, err := r.ledger.ApplyDecrement(ctx, ev.AreaID, ev.Date, ev.SpotsAfter)
	if err != nil {
		log.Printf("reactor_error reservation_id=%d area_id=%d date=%s error=%q",
			ev.ReservationID, ev.AreaID, ev.Date.Format("2006-01-02"), err)
		return
	}
	if applied {
		log.Printf("reactor_reconciled reservation_id=%d area_id=%d date=%s",
			ev.ReservationID, ev.AreaID, ev.Date.Format("2006-01-02"))
	}
}
