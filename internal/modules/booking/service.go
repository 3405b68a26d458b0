package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"cospace/internal/domain"
	"cospace/internal/events"
	"cospace/internal/repository"
)

type Service struct {
	reservations ReservationStore
	spaces       SpaceReader
	areas        AreaReader
	ledger       LedgerReader
	bus          EventPublisher
}

func NewService(
	reservations ReservationStore,
	spaces SpaceReader,
	areas AreaReader,
	ledger LedgerReader,
	bus EventPublisher,
) *Service {
	return &Service{
		reservations: reservations,
		spaces:       spaces,
		areas:        areas,
		ledger:       ledger,
		bus:          bus,
	}
}

// CreateReservation validates the request, takes one ledger unit for every
// (area, date) in the cross-product and persists the reservation, all as a
// single durable unit. Any shortfall rolls the whole attempt back; the
// caller never observes a partial booking.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	start := domain.Midnight(req.StartDate)
	end := domain.Midnight(req.EndDate)
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}
	if start.Before(domain.Midnight(time.Now())) {
		return nil, ErrInvalidDateRange
	}
	if len(req.AreaIDs) == 0 {
		return nil, ErrAreaNotFound
	}

	space, err := s.spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		if repository.NotFound(err) {
			return nil, ErrWorkspaceNotBookable
		}
		return nil, err
	}
	if space.Status != domain.SpaceApproved {
		return nil, ErrWorkspaceNotBookable
	}

	areas, err := s.areas.GetByIDs(ctx, req.AreaIDs)
	if err != nil {
		return nil, err
	}
	if len(areas) != len(req.AreaIDs) {
		return nil, ErrAreaNotFound
	}
	for _, a := range areas {
		if a.SpaceID != space.ID {
			return nil, ErrAreaNotFound
		}
	}

	days := int(end.Sub(start).Hours() / 24)

	var total float64
	details := make([]domain.ReservationDetail, 0, len(areas))
	for _, a := range areas {
		total += a.PricePerDay * float64(days)
		details = append(details, domain.ReservationDetail{
			AreaID:      a.ID,
			PricePerDay: a.PricePerDay,
		})
	}
	total = math.Round(total*100) / 100

	keys := make([]repository.ConsumeKey, 0, len(areas)*days)
	domain.EachDay(start, end, func(day time.Time) {
		for _, a := range areas {
			keys = append(keys, repository.ConsumeKey{AreaID: a.ID, Date: day})
		}
	})

	res := &domain.Reservation{
		UserID:        req.UserID,
		SpaceID:       space.ID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    total,
		Status:        domain.ReservationPending,
		PaymentMethod: req.PaymentMethod,
		Details:       details,
	}

	consumed, err := s.reservations.CreateWithConsumption(ctx, res, keys)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientCapacity):
			return nil, ErrCapacityUnavailable
		case errors.Is(err, repository.ErrConcurrencyConflict):
			return nil, ErrConcurrencyConflict
		default:
			return nil, err
		}
	}

	// Reconciliation safety net: the ledger decrements are already durable,
	// the reactor re-checks them against these notifications.
	if s.bus != nil {
		for _, c := range consumed {
			s.bus.Publish(events.ReservationCreated{
				ReservationID: res.ID,
				AreaID:        c.AreaID,
				Date:          c.Date,
				SpotsAfter:    c.SpotsAfter,
			})
		}
	}

	return res, nil
}

// GetMyReservations lists the user's reservations, newest first.
func (s *Service) GetMyReservations(ctx context.Context, userID int64, limit, offset int) ([]repository.UserReservationRow, error) {
	return s.reservations.GetUserReservations(ctx, userID, limit, offset)
}

// CancelReservation moves a pending or confirmed reservation to cancelled
// and releases the remaining ledger units for days that have not started.
func (s *Service) CancelReservation(ctx context.Context, reservationID, userID int64, reason string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if repository.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrForbidden
	}
	if !res.Status.CanTransitionTo(domain.ReservationCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.reservations.CancelWithRelease(ctx, res, reason, time.Now()); err != nil {
		if repository.NotFound(err) {
			// Lost the race with a lifecycle transition; re-check.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	return s.reservations.GetByID(ctx, reservationID)
}

// GetAreaAvailability reports remaining spots per day over [from, to).
// Days without a materialized record show the full area capacity, or zero
// when the area is not listed.
func (s *Service) GetAreaAvailability(ctx context.Context, areaID int64, from, to time.Time) (*AreaAvailabilityResponse, error) {
	from = domain.Midnight(from)
	to = domain.Midnight(to)
	if !from.Before(to) {
		return nil, ErrInvalidDateRange
	}

	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		if repository.NotFound(err) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}

	recs, err := s.ledger.RangeForArea(ctx, areaID, from, to)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int, len(recs))
	for _, rec := range recs {
		byDay[rec.Date.Format("2006-01-02")] = rec.AvailableSpots
	}

	resp := &AreaAvailabilityResponse{
		AreaID: areaID,
		From:   from.Format("2006-01-02"),
		To:     to.Format("2006-01-02"),
		Days:   make([]DayAvailability, 0, int(to.Sub(from).Hours()/24)),
	}
	domain.EachDay(from, to, func(day time.Time) {
		key := day.Format("2006-01-02")
		spots, ok := byDay[key]
		if !ok {
			if area.IsListed {
				spots = area.Capacity
			} else {
				spots = 0
			}
		}
		resp.Days = append(resp.Days, DayAvailability{Date: key, AvailableSpots: spots})
	})
	return resp, nil
}
