package booking

import (
	"context"
	"time"

	"cospace/internal/domain"
	"cospace/internal/events"
	"cospace/internal/repository"
)

// ReservationStore is the durable record of reservations. The consume keys
// passed to CreateWithConsumption must be decremented in the same
// transaction as the reservation write.
type ReservationStore interface {
	CreateWithConsumption(ctx context.Context, r *domain.Reservation, keys []repository.ConsumeKey) ([]repository.ConsumeResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetUserReservations(ctx context.Context, userID int64, limit, offset int) ([]repository.UserReservationRow, error)
	CancelWithRelease(ctx context.Context, r *domain.Reservation, reason string, releaseFrom time.Time) error
}

// SpaceReader is a read-only lookup used for booking validation.
type SpaceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.CoworkingSpace, error)
}

// AreaReader resolves the requested areas for validation and pricing.
type AreaReader interface {
	GetByID(ctx context.Context, id int64) (*domain.CoworkingArea, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.CoworkingArea, error)
}

// LedgerReader exposes the availability side table for read-only queries.
type LedgerReader interface {
	RangeForArea(ctx context.Context, areaID int64, from, to time.Time) ([]domain.AvailabilityRecord, error)
}

// EventPublisher is the fire-and-forget notification channel.
type EventPublisher interface {
	Publish(ev events.ReservationCreated)
}
