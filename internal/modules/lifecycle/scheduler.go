package lifecycle

import (
	"context"
	"log"
	"sync"
	"time"

	"cospace/internal/domain"
)

// ReservationStore is the slice of the reservation repository the scheduler
// needs: query candidates by status and age, and commit status moves in
// batches.
type ReservationStore interface {
	ListByStatusOlderThan(ctx context.Context, status domain.ReservationStatus, cutoff time.Time) ([]domain.Reservation, error)
	UpdateStatusBatch(ctx context.Context, ids []int64, from, to domain.ReservationStatus) (int64, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler promotes reservations through their lifecycle on a fixed tick:
// pending reservations older than the confirmation window become confirmed,
// and confirmed reservations whose stay ended become completed. A failed run
// is logged and simply retried by the next tick; the queries re-select the
// same candidates, so the retry is idempotent by construction.
type Scheduler struct {
	store    ReservationStore
	interval time.Duration
	window   time.Duration

	runMu sync.Mutex
}

func New(store ReservationStore, interval, window time.Duration) *Scheduler {
	return &Scheduler{
		store:    store,
		interval: interval,
		window:   window,
	}
}

// Start runs the tick loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.RunOnce(ctx, time.Now()); err != nil {
					log.Printf("lifecycle_run_failed error=%q", err)
				}
			}
		}
	}()
}

// RunOnce executes a single scheduler pass. Runs never overlap: a tick that
// fires while the previous pass is still working waits for it.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	cutoff := now.Add(-s.window)
	pending, err := s.store.ListByStatusOlderThan(ctx, domain.ReservationPending, cutoff)
	if err != nil {
		return err
	}

	if len(pending) > 0 {
		ids := make([]int64, 0, len(pending))
		for _, r := range pending {
			ids = append(ids, r.ID)
		}
		// Still-pending guard inside the batch: a candidate cancelled since
		// the listing keeps its terminal status and is skipped.
		moved, err := s.store.UpdateStatusBatch(ctx, ids, domain.ReservationPending, domain.ReservationConfirmed)
		if err != nil {
			return err
		}
		if moved > 0 {
			log.Printf("lifecycle_confirmed count=%d window=%s", moved, s.window)
		}
	}

	completed, err := s.store.CompleteElapsed(ctx, now)
	if err != nil {
		return err
	}
	if completed > 0 {
		log.Printf("lifecycle_completed count=%d", completed)
	}
	return nil
}
