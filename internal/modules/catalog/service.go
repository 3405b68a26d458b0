package catalog

import (
	"context"
	"errors"

	"cospace/internal/domain"
	"cospace/internal/repository"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("space not found")
)

type Service struct {
	spaceRepo *repository.SpaceRepository
	areaRepo  *repository.AreaRepository
}

func NewService(spaceRepo *repository.SpaceRepository, areaRepo *repository.AreaRepository) *Service {
	return &Service{spaceRepo: spaceRepo, areaRepo: areaRepo}
}

func (s *Service) ListSpaces(ctx context.Context, f repository.SpaceFilters) ([]domain.CoworkingSpace, int64, error) {
	return s.spaceRepo.GetAll(ctx, f)
}

func (s *Service) GetSpace(ctx context.Context, id int64) (*domain.CoworkingSpace, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if repository.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return space, nil
}

// CreateSpace submits a new listing. It always enters the pending state;
// the approval job decides its fate.
func (s *Service) CreateSpace(ctx context.Context, user *domain.User, req CreateSpaceRequest) (*domain.CoworkingSpace, error) {
	if user.Role != domain.RoleHoster {
		return nil, ErrForbidden
	}

	photos := make([]domain.SpacePhoto, 0, len(req.PhotoURLs))
	for i, url := range req.PhotoURLs {
		photos = append(photos, domain.SpacePhoto{URL: url, Position: i})
	}

	space := &domain.CoworkingSpace{
		HosterID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Street:      req.Street,
		City:        req.City,
		Capacity:    req.Capacity,
		PricePerDay: req.PricePerDay,
		Status:      domain.SpacePending,
		Photos:      photos,
	}
	if err := s.spaceRepo.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *Service) CreateArea(ctx context.Context, userID, spaceID int64, req CreateAreaRequest) (*domain.CoworkingArea, error) {
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		if repository.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if space.HosterID != userID {
		return nil, ErrForbidden
	}

	area := &domain.CoworkingArea{
		SpaceID:     space.ID,
		Name:        req.Name,
		AreaType:    domain.AreaType(req.AreaType),
		Capacity:    req.Capacity,
		PricePerDay: req.PricePerDay,
		IsListed:    true,
	}
	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}
