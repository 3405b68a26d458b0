package repository

import (
	"context"
	"time"

	"cospace/internal/domain"

	"gorm.io/gorm"
)

type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) GetByID(ctx context.Context, id int64) (*domain.CoworkingArea, error) {
	var area domain.CoworkingArea
	tx := r.db.WithContext(ctx).First(&area, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &area, nil
}

// GetByIDs loads the given areas; the result may be shorter than ids when
// some do not exist.
func (r *AreaRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.CoworkingArea, error) {
	var areas []domain.CoworkingArea
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&areas)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return areas, nil
}

func (r *AreaRepository) GetBySpaceID(ctx context.Context, spaceID int64) ([]domain.CoworkingArea, error) {
	var areas []domain.CoworkingArea
	tx := r.db.WithContext(ctx).
		Where("space_id = ?", spaceID).
		Order("id").
		Find(&areas)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return areas, nil
}

func (r *AreaRepository) Create(ctx context.Context, area *domain.CoworkingArea) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *AreaRepository) Update(ctx context.Context, area *domain.CoworkingArea) error {
	area.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(area).Error
}
