package repository

import (
	"context"
	"errors"
	"time"

	"cospace/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInsufficientCapacity means the requested units are not available
	// for the (area, date) key.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	// ErrConcurrencyConflict is a ledger write that lost a race and could
	// not be retried.
	ErrConcurrencyConflict = errors.New("concurrent ledger update")
)

// AvailabilityRepository is the per-area-per-day capacity ledger. All spot
// mutation goes through TryConsume/Release/ApplyDecrement; nothing else is
// allowed to read-modify-write the table.
type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (r *AvailabilityRepository) WithTx(tx *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: tx}
}

// Get returns the record for (areaID, date), or nil when it has not been
// materialized yet.
func (r *AvailabilityRepository) Get(ctx context.Context, areaID int64, date time.Time) (*domain.AvailabilityRecord, error) {
	var rec domain.AvailabilityRecord
	tx := r.db.WithContext(ctx).
		Where("area_id = ? AND date = ?", areaID, domain.Midnight(date)).
		First(&rec)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &rec, nil
}

// RangeForArea returns materialized records for [from, to) ordered by date.
func (r *AvailabilityRepository) RangeForArea(ctx context.Context, areaID int64, from, to time.Time) ([]domain.AvailabilityRecord, error) {
	var recs []domain.AvailabilityRecord
	tx := r.db.WithContext(ctx).
		Where("area_id = ? AND date >= ? AND date < ?", areaID, domain.Midnight(from), domain.Midnight(to)).
		Order("date").
		Find(&recs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return recs, nil
}

// TryConsume atomically takes units spots from (areaID, date). The decrement
// is a single conditional UPDATE guarded by available_spots >= units, so two
// concurrent callers racing for the last spot resolve deterministically:
// exactly one row update wins. Absent records are materialized at full area
// capacity; an unlisted area reports no capacity for any date.
//
// The returned value is the spot count observed after the decrement. It is a
// reconciliation hint only: a concurrent consumer may have moved the counter
// further by the time the caller reads it, and a lower value is always safe.
func (r *AvailabilityRepository) TryConsume(ctx context.Context, areaID int64, date time.Time, units int) (int, error) {
	if units <= 0 {
		return 0, ErrInsufficientCapacity
	}
	date = domain.Midnight(date)

	n, err := r.consume(ctx, areaID, date, units)
	if err != nil {
		return 0, err
	}
	if n == 1 {
		return r.spotsAfter(ctx, areaID, date)
	}

	// No row matched: either the record exists but is short on spots, or it
	// has not been materialized yet.
	rec, err := r.Get(ctx, areaID, date)
	if err != nil {
		return 0, err
	}
	if rec != nil {
		return 0, ErrInsufficientCapacity
	}

	var area domain.CoworkingArea
	if err := r.db.WithContext(ctx).First(&area, areaID).Error; err != nil {
		return 0, err
	}
	if !area.IsListed || area.Capacity < units {
		return 0, ErrInsufficientCapacity
	}

	now := time.Now().UTC()
	fresh := domain.AvailabilityRecord{
		AreaID:         areaID,
		Date:           date,
		AvailableSpots: area.Capacity - units,
		Capacity:       area.Capacity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// ON CONFLICT DO NOTHING instead of catching the unique violation: inside
	// an enclosing transaction a raised 23505 would poison the rest of the
	// Postgres transaction, so the insert must not error when it loses the
	// materialization race.
	ins := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh)
	if ins.Error != nil {
		return 0, ins.Error
	}
	if ins.RowsAffected == 0 {
		// Another writer materialized the row between our miss and the
		// insert. Retry the conditional decrement once against their row.
		n, err := r.consume(ctx, areaID, date, units)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, ErrInsufficientCapacity
		}
		return r.spotsAfter(ctx, areaID, date)
	}
	return fresh.AvailableSpots, nil
}

// Release returns units spots to (areaID, date), clamped at the recorded
// capacity. Releasing against an absent record is a no-op: absent already
// means full capacity.
func (r *AvailabilityRepository) Release(ctx context.Context, areaID int64, date time.Time, units int) error {
	if units <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.AvailabilityRecord{}).
		Where("area_id = ? AND date = ?", areaID, domain.Midnight(date)).
		Updates(map[string]any{
			"available_spots": gorm.Expr(
				"CASE WHEN available_spots + ? > capacity THEN capacity ELSE available_spots + ? END",
				units, units,
			),
			"updated_at": time.Now().UTC(),
		}).Error
}

// ApplyDecrement is the reactor's reconciliation write: decrement by one
// only if the record still shows more spots than the coordinator observed
// after its own decrement, meaning that decrement was lost. Returns whether
// a row changed.
func (r *AvailabilityRepository) ApplyDecrement(ctx context.Context, areaID int64, date time.Time, spotsAfter int) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.AvailabilityRecord{}).
		Where("area_id = ? AND date = ? AND available_spots > ? AND available_spots > 0",
			areaID, domain.Midnight(date), spotsAfter).
		Updates(map[string]any{
			"available_spots": gorm.Expr("available_spots - 1"),
			"updated_at":      time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *AvailabilityRepository) consume(ctx context.Context, areaID int64, date time.Time, units int) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.AvailabilityRecord{}).
		Where("area_id = ? AND date = ? AND available_spots >= ?", areaID, date, units).
		Updates(map[string]any{
			"available_spots": gorm.Expr("available_spots - ?", units),
			"updated_at":      time.Now().UTC(),
		})
	return tx.RowsAffected, tx.Error
}

func (r *AvailabilityRepository) spotsAfter(ctx context.Context, areaID int64, date time.Time) (int, error) {
	rec, err := r.Get(ctx, areaID, date)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, ErrConcurrencyConflict
	}
	return rec.AvailableSpots, nil
}
