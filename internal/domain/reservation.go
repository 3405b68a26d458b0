package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// CanTransitionTo encodes the reservation state machine. Cancelled and
// completed are terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCancelled || next == ReservationCompleted
	default:
		return false
	}
}

// Reservation books one or more areas of a space for the half-open date
// range [StartDate, EndDate). Dates are date-only, normalized to UTC
// midnight. TotalPrice is the sum of detail price-per-day snapshots
// multiplied by the day count.
type Reservation struct {
	ID                 int64             `json:"id"`
	UserID             int64             `json:"user_id" validate:"required"`
	SpaceID            int64             `json:"space_id" validate:"required"`
	StartDate          time.Time         `json:"start_date" validate:"required"`
	EndDate            time.Time         `json:"end_date" validate:"required"`
	TotalPrice         float64           `json:"total_price" validate:"gte=0"`
	Status             ReservationStatus `json:"status"`
	PaymentMethod      string            `json:"payment_method,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`

	Details []ReservationDetail `json:"details" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
}

// ReservationDetail is one line item per booked area, capturing the
// price-per-day at booking time.
type ReservationDetail struct {
	ID            int64   `json:"id"`
	ReservationID int64   `json:"reservation_id"`
	AreaID        int64   `json:"area_id"`
	PricePerDay   float64 `json:"price_per_day"`
}

// Days returns the number of billable days in [StartDate, EndDate).
func (r *Reservation) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// Midnight normalizes a timestamp to UTC midnight of its calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EachDay calls fn for every calendar day in the half-open range [from, to).
func EachDay(from, to time.Time, fn func(day time.Time)) {
	for d := Midnight(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
