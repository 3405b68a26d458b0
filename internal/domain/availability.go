package domain

import "time"

// AvailabilityRecord tracks the remaining bookable spots of one area on one
// calendar day. Rows are materialized lazily on first consumption; an absent
// row means the full area capacity is still available (zero if the area is
// not listed). Invariant: 0 <= AvailableSpots <= Capacity.
type AvailabilityRecord struct {
	ID             int64     `json:"id"`
	AreaID         int64     `json:"area_id" gorm:"uniqueIndex:idx_area_date"`
	Date           time.Time `json:"date" gorm:"uniqueIndex:idx_area_date"`
	AvailableSpots int       `json:"available_spots"`
	Capacity       int       `json:"capacity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
