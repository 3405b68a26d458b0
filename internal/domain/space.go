package domain

import "time"

type SpaceStatus string

const (
	SpacePending  SpaceStatus = "pending"
	SpaceApproved SpaceStatus = "approved"
	SpaceRejected SpaceStatus = "rejected"
)

type CoworkingSpace struct {
	ID          int64       `json:"id"`
	HosterID    int64       `json:"hoster_id"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Street      string      `json:"street"`
	City        string      `json:"city"`
	Capacity    int         `json:"capacity" validate:"gte=0"`
	PricePerDay float64     `json:"price_per_day" validate:"gte=0"`
	Status      SpaceStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	DeletedAt   *time.Time  `json:"-"`

	Photos []SpacePhoto    `json:"photos,omitempty" gorm:"foreignKey:SpaceID"`
	Areas  []CoworkingArea `json:"areas,omitempty" gorm:"foreignKey:SpaceID"`
}

type SpacePhoto struct {
	ID       int64  `json:"id"`
	SpaceID  int64  `json:"space_id"`
	URL      string `json:"url" validate:"required"`
	Position int    `json:"position"`
}
