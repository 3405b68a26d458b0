package repository

import (
	"context"
	"testing"
	"time"

	"cospace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusBatch_DoesNotResurrectCancelled(t *testing.T) {
	db := openTestDB(t)
	reservations := NewReservationRepository(db)
	ledger := NewAvailabilityRepository(db)
	ctx := context.Background()

	area := seedArea(t, db, 3, true)
	start := domain.Midnight(time.Now().UTC()).AddDate(0, 0, 2)

	res := &domain.Reservation{
		UserID:     1,
		SpaceID:    area.SpaceID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 1),
		TotalPrice: 80,
		Status:     domain.ReservationPending,
		Details:    []domain.ReservationDetail{{AreaID: area.ID, PricePerDay: 80}},
	}
	_, err := reservations.CreateWithConsumption(ctx, res, []ConsumeKey{{AreaID: area.ID, Date: start}})
	require.NoError(t, err)

	// The scheduler selects its candidates...
	pending, err := reservations.ListByStatusOlderThan(ctx, domain.ReservationPending, time.Now())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// ...then a cancellation commits and returns the unit to the ledger.
	loaded, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.NoError(t, reservations.CancelWithRelease(ctx, loaded, "change of plans", time.Now()))

	rec, err := ledger.Get(ctx, area.ID, start)
	require.NoError(t, err)
	require.Equal(t, 3, rec.AvailableSpots)

	// The stale batch must lose: the terminal status stays, and no phantom
	// confirmed reservation holds capacity it no longer owns.
	moved, err := reservations.UpdateStatusBatch(ctx, []int64{res.ID}, domain.ReservationPending, domain.ReservationConfirmed)
	require.NoError(t, err)
	assert.Zero(t, moved)

	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, got.Status)
}

func TestCancelWithRelease_KeepsStartedDayConsumed(t *testing.T) {
	db := openTestDB(t)
	reservations := NewReservationRepository(db)
	ledger := NewAvailabilityRepository(db)
	ctx := context.Background()

	area := seedArea(t, db, 2, true)
	today := domain.Midnight(time.Now().UTC())
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	// A confirmed stay spanning yesterday through tomorrow, mid-visit.
	for _, day := range []time.Time{yesterday, today, tomorrow} {
		_, err := ledger.TryConsume(ctx, area.ID, day, 1)
		require.NoError(t, err)
	}
	res := &domain.Reservation{
		UserID:     1,
		SpaceID:    area.SpaceID,
		StartDate:  yesterday,
		EndDate:    tomorrow.AddDate(0, 0, 1),
		TotalPrice: 240,
		Status:     domain.ReservationConfirmed,
		Details:    []domain.ReservationDetail{{AreaID: area.ID, PricePerDay: 80}},
	}
	require.NoError(t, db.Create(res).Error)

	loaded, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.NoError(t, reservations.CancelWithRelease(ctx, loaded, "leaving early", time.Now()))

	// Elapsed days and the day already underway stay consumed; only days
	// that have not started go back.
	for _, tc := range []struct {
		day  time.Time
		want int
	}{
		{yesterday, 1},
		{today, 1},
		{tomorrow, 2},
	} {
		rec, err := ledger.Get(ctx, area.ID, tc.day)
		require.NoError(t, err)
		assert.Equal(t, tc.want, rec.AvailableSpots, "day %s", tc.day.Format("2006-01-02"))
	}

	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, got.Status)
}
