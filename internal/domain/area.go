package domain

import "time"

type AreaType string

const (
	AreaSharedDesks    AreaType = "shared_desks"
	AreaPrivateOffice  AreaType = "private_office"
	AreaIndividualDesk AreaType = "individual_desk"
)

// CoworkingArea is a bookable unit inside a space: a block of shared desks,
// a private office or a single desk. Capacity is the number of spots that
// can be sold for one calendar day.
type CoworkingArea struct {
	ID          int64     `json:"id"`
	SpaceID     int64     `json:"space_id"`
	Name        string    `json:"name" validate:"required"`
	AreaType    AreaType  `json:"area_type" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	PricePerDay float64   `json:"price_per_day" validate:"required,gte=0"`
	IsListed    bool      `json:"is_listed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
