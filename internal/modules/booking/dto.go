package booking

import "time"

type CreateReservationRequest struct {
	UserID        int64     `json:"-"`
	SpaceID       int64     `json:"space_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	AreaIDs       []int64   `json:"area_ids" binding:"required,min=1"`
	PaymentMethod string    `json:"payment_method"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DayAvailability is one calendar day of an area's remaining spots.
type DayAvailability struct {
	Date           string `json:"date"`
	AvailableSpots int    `json:"available_spots"`
}

type AreaAvailabilityResponse struct {
	AreaID int64             `json:"area_id"`
	From   string            `json:"from"`
	To     string            `json:"to"`
	Days   []DayAvailability `json:"days"`
}
