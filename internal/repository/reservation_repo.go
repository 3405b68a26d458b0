package repository

import (
	"context"
	"errors"
	"time"

	"cospace/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ConsumeKey identifies one unit of capacity to take from the ledger.
type ConsumeKey struct {
	AreaID int64
	Date   time.Time
}

// ConsumeResult reports the ledger value observed right after the decrement
// for one key.
type ConsumeResult struct {
	AreaID     int64
	Date       time.Time
	SpotsAfter int
}

// CreateWithConsumption persists the reservation and decrements the ledger
// for every key as one transaction. If any key is short on capacity the
// whole transaction rolls back: no reservation row, no ledger change. The
// returned results carry the post-decrement spot counts for event emission.
func (r *ReservationRepository) CreateWithConsumption(ctx context.Context, res *domain.Reservation, keys []ConsumeKey) ([]ConsumeResult, error) {
	results := make([]ConsumeResult, 0, len(keys))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := NewAvailabilityRepository(tx)
		for _, k := range keys {
			spots, err := ledger.TryConsume(ctx, k.AreaID, k.Date, 1)
			if err != nil {
				return err
			}
			results = append(results, ConsumeResult{
				AreaID:     k.AreaID,
				Date:       domain.Midnight(k.Date),
				SpotsAfter: spots,
			})
		}
		return tx.Create(res).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).Preload("Details").First(&res, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &res, nil
}

// ListByStatusOlderThan returns reservations in the given status created at
// or before the cutoff, oldest first.
func (r *ReservationRepository) ListByStatusOlderThan(ctx context.Context, status domain.ReservationStatus, cutoff time.Time) ([]domain.Reservation, error) {
	var rows []domain.Reservation
	tx := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", status, cutoff).
		Order("created_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// UpdateStatusBatch moves the listed reservations from one status to another
// inside one transaction. The status guard makes the write lose against any
// transition that committed after the caller selected its candidates: a
// reservation cancelled in between simply stays cancelled, so the returned
// count may be lower than len(ids).
func (r *ReservationRepository) UpdateStatusBatch(ctx context.Context, ids []int64, from, to domain.ReservationStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var moved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Reservation{}).
			Where("id IN ? AND status = ?", ids, from).
			Updates(map[string]any{
				"status":     to,
				"updated_at": time.Now().UTC(),
			})
		moved = res.RowsAffected
		return res.Error
	})
	return moved, err
}

// CompleteElapsed closes out confirmed reservations whose stay has ended.
func (r *ReservationRepository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("status = ? AND end_date <= ?", domain.ReservationConfirmed, domain.Midnight(now)).
		Updates(map[string]any{
			"status":     domain.ReservationCompleted,
			"updated_at": time.Now().UTC(),
		})
	return tx.RowsAffected, tx.Error
}

// CancelWithRelease marks the reservation cancelled and returns every not yet
// used (area, date) unit to the ledger, all in one transaction. Only days
// after releaseFrom go back: a day already underway stays consumed.
func (r *ReservationRepository) CancelWithRelease(ctx context.Context, res *domain.Reservation, reason string, releaseFrom time.Time) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Reservation{}).
			Where("id = ? AND status IN ?", res.ID,
				[]domain.ReservationStatus{domain.ReservationPending, domain.ReservationConfirmed}).
			Updates(map[string]any{
				"status":              domain.ReservationCancelled,
				"cancellation_reason": reason,
				"cancelled_at":        &now,
				"updated_at":          now,
			})
		if err.Error != nil {
			return err.Error
		}
		if err.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		from := domain.Midnight(releaseFrom).AddDate(0, 0, 1)
		if from.Before(res.StartDate) {
			from = res.StartDate
		}
		ledger := NewAvailabilityRepository(tx)
		var releaseErr error
		domain.EachDay(from, res.EndDate, func(day time.Time) {
			if releaseErr != nil {
				return
			}
			for _, d := range res.Details {
				if e := ledger.Release(ctx, d.AreaID, day, 1); e != nil {
					releaseErr = e
					return
				}
			}
		})
		return releaseErr
	})
}

// UserReservationRow is a reservation joined with its space title for
// listing endpoints.
type UserReservationRow struct {
	ID         int64     `gorm:"column:id" json:"id"`
	Status     string    `gorm:"column:status" json:"status"`
	StartDate  time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate    time.Time `gorm:"column:end_date" json:"end_date"`
	TotalPrice float64   `gorm:"column:total_price" json:"total_price"`
	SpaceID    int64     `gorm:"column:space_id" json:"space_id"`
	SpaceTitle string    `gorm:"column:space_title" json:"space_title"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (r *ReservationRepository) GetUserReservations(ctx context.Context, userID int64, limit, offset int) ([]UserReservationRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []UserReservationRow
	q := `
SELECT
  r.id,
  r.status,
  r.start_date,
  r.end_date,
  r.total_price,
  r.space_id,
  s.title AS space_title,
  r.created_at
FROM reservations r
JOIN coworking_spaces s ON s.id = r.space_id
WHERE r.user_id = ?
ORDER BY r.created_at DESC
LIMIT ? OFFSET ?
`
	tx := r.db.WithContext(ctx).Raw(q, userID, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// IsOwnedByUser reports whether the reservation belongs to the user.
func (r *ReservationRepository) IsOwnedByUser(ctx context.Context, reservationID, userID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ? AND user_id = ?", reservationID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// NotFound reports whether err is the store's missing-row error.
func NotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
