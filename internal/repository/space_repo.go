package repository

import (
	"context"
	"time"

	"cospace/internal/domain"

	"gorm.io/gorm"
)

type SpaceFilters struct {
	City   string
	Limit  int
	Offset int
}

type SpaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

// GetAll returns approved spaces with optional filters.
func (r *SpaceRepository) GetAll(ctx context.Context, f SpaceFilters) ([]domain.CoworkingSpace, int64, error) {
	var spaces []domain.CoworkingSpace
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.CoworkingSpace{}).
		Where("status = ? AND deleted_at IS NULL", domain.SpaceApproved)

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}

	q.Count(&total)

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	err := q.
		Preload("Areas", "is_listed = ?", true).
		Preload("Photos").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&spaces).Error

	return spaces, total, err
}

func (r *SpaceRepository) GetByID(ctx context.Context, id int64) (*domain.CoworkingSpace, error) {
	var space domain.CoworkingSpace

	err := r.db.WithContext(ctx).
		Where("coworking_spaces.id = ? AND deleted_at IS NULL", id).
		Preload("Areas").
		Preload("Photos").
		First(&space).Error

	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *SpaceRepository) Create(ctx context.Context, space *domain.CoworkingSpace) error {
	return r.db.WithContext(ctx).Create(space).Error
}

func (r *SpaceRepository) Update(ctx context.Context, space *domain.CoworkingSpace) error {
	space.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(space).Error
}

// ListPending returns every space still waiting for an approval decision.
func (r *SpaceRepository) ListPending(ctx context.Context) ([]domain.CoworkingSpace, error) {
	var spaces []domain.CoworkingSpace
	err := r.db.WithContext(ctx).
		Where("status = ? AND deleted_at IS NULL", domain.SpacePending).
		Preload("Photos").
		Order("created_at").
		Find(&spaces).Error
	if err != nil {
		return nil, err
	}
	return spaces, nil
}

// SpaceDecision is one approval outcome to commit.
type SpaceDecision struct {
	SpaceID int64
	Status  domain.SpaceStatus
}

// ApplyDecisions commits a batch of approval outcomes as one transaction.
func (r *SpaceRepository) ApplyDecisions(ctx context.Context, decisions []SpaceDecision) error {
	if len(decisions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range decisions {
			err := tx.Model(&domain.CoworkingSpace{}).
				Where("id = ? AND status = ?", d.SpaceID, domain.SpacePending).
				Updates(map[string]any{
					"status":     d.Status,
					"updated_at": now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
