package approval

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"cospace/internal/domain"
	"cospace/internal/repository"
)

const minPhotos = 2

// SpaceStore is the read-write slice of the space repository the approval
// job needs.
type SpaceStore interface {
	ListPending(ctx context.Context) ([]domain.CoworkingSpace, error)
	ApplyDecisions(ctx context.Context, decisions []repository.SpaceDecision) error
}

// Evaluate is the listing approval policy. It is total and deterministic: a
// pending listing always comes out approved or rejected, and the same
// snapshot always yields the same decision.
func Evaluate(space domain.CoworkingSpace) domain.SpaceStatus {
	if strings.TrimSpace(space.Title) == "" {
		return domain.SpaceRejected
	}
	if space.PricePerDay <= 0 {
		return domain.SpaceRejected
	}
	if space.Capacity <= 0 {
		return domain.SpaceRejected
	}
	if strings.TrimSpace(space.Street) == "" {
		return domain.SpaceRejected
	}
	if len(space.Photos) < minPhotos {
		return domain.SpaceRejected
	}
	return domain.SpaceApproved
}

// Service evaluates newly submitted listings. A run loads every pending
// space, decides each one, and commits all decisions as a single batch, so
// a crash mid-run leaves every listing pending and a rerun is safe.
type Service struct {
	spaces SpaceStore

	runMu sync.Mutex
}

func NewService(spaces SpaceStore) *Service {
	return &Service{spaces: spaces}
}

// RunOnce performs one approval pass and reports the decision counts.
func (s *Service) RunOnce(ctx context.Context) (approved, rejected int, err error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	pending, err := s.spaces.ListPending(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	decisions := make([]repository.SpaceDecision, 0, len(pending))
	for _, space := range pending {
		status := Evaluate(space)
		decisions = append(decisions, repository.SpaceDecision{
			SpaceID: space.ID,
			Status:  status,
		})
		if status == domain.SpaceApproved {
			approved++
		} else {
			rejected++
		}
	}

	if err := s.spaces.ApplyDecisions(ctx, decisions); err != nil {
		return 0, 0, err
	}

	log.Printf("approval_run approved=%d rejected=%d", approved, rejected)
	return approved, rejected, nil
}

// Start runs one pass immediately and then, if interval is non-zero, keeps
// re-running on a ticker until ctx is cancelled.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	go func() {
		if _, _, err := s.RunOnce(ctx); err != nil {
			log.Printf("approval_run_failed error=%q", err)
		}
		if interval <= 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, _, err := s.RunOnce(ctx); err != nil {
					log.Printf("approval_run_failed error=%q", err)
				}
			}
		}
	}()
}
