package booking

import (
	"context"
	"testing"
	"time"

	"cospace/internal/domain"
	"cospace/internal/events"
	"cospace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock stores

type MockReservationStore struct {
	mock.Mock
}

func (m *MockReservationStore) CreateWithConsumption(ctx context.Context, r *domain.Reservation, keys []repository.ConsumeKey) ([]repository.ConsumeResult, error) {
	args := m.Called(ctx, r, keys)
	if r != nil {
		r.ID = 999 // simulate DB insert
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConsumeResult), args.Error(1)
}

func (m *MockReservationStore) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationStore) GetUserReservations(ctx context.Context, userID int64, limit, offset int) ([]repository.UserReservationRow, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]repository.UserReservationRow), args.Error(1)
}

func (m *MockReservationStore) CancelWithRelease(ctx context.Context, r *domain.Reservation, reason string, releaseFrom time.Time) error {
	args := m.Called(ctx, r, reason, releaseFrom)
	return args.Error(0)
}

type MockSpaceReader struct {
	mock.Mock
}

func (m *MockSpaceReader) GetByID(ctx context.Context, id int64) (*domain.CoworkingSpace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoworkingSpace), args.Error(1)
}

type MockAreaReader struct {
	mock.Mock
}

func (m *MockAreaReader) GetByID(ctx context.Context, id int64) (*domain.CoworkingArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoworkingArea), args.Error(1)
}

func (m *MockAreaReader) GetByIDs(ctx context.Context, ids []int64) ([]domain.CoworkingArea, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoworkingArea), args.Error(1)
}

type MockLedgerReader struct {
	mock.Mock
}

func (m *MockLedgerReader) RangeForArea(ctx context.Context, areaID int64, from, to time.Time) ([]domain.AvailabilityRecord, error) {
	args := m.Called(ctx, areaID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityRecord), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
	published []events.ReservationCreated
}

func (m *MockPublisher) Publish(ev events.ReservationCreated) {
	m.Called(ev)
	m.published = append(m.published, ev)
}

func approvedSpace(id int64) *domain.CoworkingSpace {
	return &domain.CoworkingSpace{
		ID:       id,
		HosterID: 1,
		Title:    "Loft on Main",
		Status:   domain.SpaceApproved,
	}
}

func twoAreas(spaceID int64) []domain.CoworkingArea {
	return []domain.CoworkingArea{
		{ID: 10, SpaceID: spaceID, Capacity: 4, PricePerDay: 80, IsListed: true},
		{ID: 11, SpaceID: spaceID, Capacity: 2, PricePerDay: 82, IsListed: true},
	}
}

func TestService_CreateReservation_Success(t *testing.T) {
	store := new(MockReservationStore)
	spaces := new(MockSpaceReader)
	areas := new(MockAreaReader)
	bus := new(MockPublisher)

	spaces.On("GetByID", mock.Anything, int64(5)).Return(approvedSpace(5), nil)
	areas.On("GetByIDs", mock.Anything, []int64{10, 11}).Return(twoAreas(5), nil)

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	consumed := []repository.ConsumeResult{
		{AreaID: 10, Date: start, SpotsAfter: 3},
		{AreaID: 11, Date: start, SpotsAfter: 1},
		{AreaID: 10, Date: start.AddDate(0, 0, 1), SpotsAfter: 3},
		{AreaID: 11, Date: start.AddDate(0, 0, 1), SpotsAfter: 1},
	}
	store.On("CreateWithConsumption", mock.Anything, mock.Anything, mock.Anything).Return(consumed, nil)
	bus.On("Publish", mock.Anything).Return()

	service := NewService(store, spaces, areas, new(MockLedgerReader), bus)

	res, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:        7,
		SpaceID:       5,
		StartDate:     start,
		EndDate:       end,
		AreaIDs:       []int64{10, 11},
		PaymentMethod: "card",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	// 2 areas priced 80 and 82 over a 2-day range.
	assert.Equal(t, 324.0, res.TotalPrice)
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Len(t, res.Details, 2)

	// One notification per consumed (area, date) pair.
	assert.Len(t, bus.published, 4)
	store.AssertExpectations(t)
}

func TestService_CreateReservation_ConsumesFullCrossProduct(t *testing.T) {
	store := new(MockReservationStore)
	spaces := new(MockSpaceReader)
	areas := new(MockAreaReader)

	spaces.On("GetByID", mock.Anything, int64(5)).Return(approvedSpace(5), nil)
	areas.On("GetByIDs", mock.Anything, []int64{10, 11}).Return(twoAreas(5), nil)

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	var gotKeys []repository.ConsumeKey
	store.On("CreateWithConsumption", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotKeys = args.Get(2).([]repository.ConsumeKey)
		}).
		Return([]repository.ConsumeResult{}, nil)

	service := NewService(store, spaces, areas, new(MockLedgerReader), nil)

	_, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:    7,
		SpaceID:   5,
		StartDate: start,
		EndDate:   end,
		AreaIDs:   []int64{10, 11},
	})

	assert.NoError(t, err)
	// 2 areas x 3 days
	assert.Len(t, gotKeys, 6)
}

func TestService_CreateReservation_InvalidDateRange(t *testing.T) {
	service := NewService(new(MockReservationStore), new(MockSpaceReader), new(MockAreaReader), new(MockLedgerReader), nil)

	start := time.Date(2026, 12, 2, 0, 0, 0, 0, time.UTC)
	_, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:    7,
		SpaceID:   5,
		StartDate: start,
		EndDate:   start, // empty range
		AreaIDs:   []int64{10},
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestService_CreateReservation_WorkspaceNotApproved(t *testing.T) {
	spaces := new(MockSpaceReader)
	spaces.On("GetByID", mock.Anything, int64(5)).Return(&domain.CoworkingSpace{
		ID:     5,
		Status: domain.SpacePending,
	}, nil)

	service := NewService(new(MockReservationStore), spaces, new(MockAreaReader), new(MockLedgerReader), nil)

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:    7,
		SpaceID:   5,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		AreaIDs:   []int64{10},
	})

	assert.ErrorIs(t, err, ErrWorkspaceNotBookable)
}

func TestService_CreateReservation_AreaFromAnotherSpace(t *testing.T) {
	spaces := new(MockSpaceReader)
	areas := new(MockAreaReader)

	spaces.On("GetByID", mock.Anything, int64(5)).Return(approvedSpace(5), nil)
	areas.On("GetByIDs", mock.Anything, []int64{10}).Return([]domain.CoworkingArea{
		{ID: 10, SpaceID: 6, Capacity: 4, PricePerDay: 80, IsListed: true},
	}, nil)

	service := NewService(new(MockReservationStore), spaces, areas, new(MockLedgerReader), nil)

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:    7,
		SpaceID:   5,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		AreaIDs:   []int64{10},
	})

	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestService_CreateReservation_CapacityUnavailable(t *testing.T) {
	store := new(MockReservationStore)
	spaces := new(MockSpaceReader)
	areas := new(MockAreaReader)
	bus := new(MockPublisher)

	spaces.On("GetByID", mock.Anything, int64(5)).Return(approvedSpace(5), nil)
	areas.On("GetByIDs", mock.Anything, []int64{10}).Return(twoAreas(5)[:1], nil)
	store.On("CreateWithConsumption", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, repository.ErrInsufficientCapacity)

	service := NewService(store, spaces, areas, new(MockLedgerReader), bus)

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:    7,
		SpaceID:   5,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		AreaIDs:   []int64{10},
	})

	assert.ErrorIs(t, err, ErrCapacityUnavailable)
	// No events after a failed booking.
	assert.Empty(t, bus.published)
}

func TestService_CancelReservation_InvalidTransitionFromTerminal(t *testing.T) {
	store := new(MockReservationStore)
	store.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		UserID: 7,
		Status: domain.ReservationCompleted,
	}, nil)

	service := NewService(store, new(MockSpaceReader), new(MockAreaReader), new(MockLedgerReader), nil)

	_, err := service.CancelReservation(context.Background(), 42, 7, "changed plans")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_CancelReservation_Forbidden(t *testing.T) {
	store := new(MockReservationStore)
	store.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		UserID: 8,
		Status: domain.ReservationPending,
	}, nil)

	service := NewService(store, new(MockSpaceReader), new(MockAreaReader), new(MockLedgerReader), nil)

	_, err := service.CancelReservation(context.Background(), 42, 7, "changed plans")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_GetAreaAvailability_FillsUnmaterializedDays(t *testing.T) {
	areas := new(MockAreaReader)
	ledger := new(MockLedgerReader)

	areas.On("GetByID", mock.Anything, int64(10)).Return(&domain.CoworkingArea{
		ID:       10,
		SpaceID:  5,
		Capacity: 6,
		IsListed: true,
	}, nil)

	from := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)
	ledger.On("RangeForArea", mock.Anything, int64(10), from, to).Return([]domain.AvailabilityRecord{
		{AreaID: 10, Date: from.AddDate(0, 0, 1), AvailableSpots: 2, Capacity: 6},
	}, nil)

	service := NewService(new(MockReservationStore), new(MockSpaceReader), areas, ledger, nil)

	resp, err := service.GetAreaAvailability(context.Background(), 10, from, to)
	assert.NoError(t, err)
	assert.Len(t, resp.Days, 3)
	assert.Equal(t, 6, resp.Days[0].AvailableSpots)
	assert.Equal(t, 2, resp.Days[1].AvailableSpots)
	assert.Equal(t, 6, resp.Days[2].AvailableSpots)
}

func TestService_GetAreaAvailability_UnlistedAreaReportsZero(t *testing.T) {
	areas := new(MockAreaReader)
	ledger := new(MockLedgerReader)

	areas.On("GetByID", mock.Anything, int64(10)).Return(&domain.CoworkingArea{
		ID:       10,
		Capacity: 6,
		IsListed: false,
	}, nil)

	from := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)
	ledger.On("RangeForArea", mock.Anything, int64(10), from, to).Return([]domain.AvailabilityRecord{}, nil)

	service := NewService(new(MockReservationStore), new(MockSpaceReader), areas, ledger, nil)

	resp, err := service.GetAreaAvailability(context.Background(), 10, from, to)
	assert.NoError(t, err)
	for _, d := range resp.Days {
		assert.Zero(t, d.AvailableSpots)
	}
}

func TestService_CreateReservation_SpaceMissing(t *testing.T) {
	spaces := new(MockSpaceReader)
	spaces.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockReservationStore), spaces, new(MockAreaReader), new(MockLedgerReader), nil)

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.CreateReservation(context.Background(), CreateReservationRequest{
		UserID:    7,
		SpaceID:   5,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		AreaIDs:   []int64{10},
	})

	assert.ErrorIs(t, err, ErrWorkspaceNotBookable)
}
