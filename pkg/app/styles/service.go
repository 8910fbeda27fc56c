package styles

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/domain/style"
	"github.com/ArtSentry/StyleGate/pkg/infra/events"
)

// Service owns the write path of the protected-style registry. Every
// mutation lands in the durable store and is announced over pub/sub so
// peer caches can refresh before the staleness interval.
type Service struct {
	logger    *logrus.Logger
	repo      style.Repository
	publisher events.Publisher
}

func NewService(logger *logrus.Logger, repo style.Repository, publisher events.Publisher) *Service {
	return &Service{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

type RegisterInput struct {
	Name          string
	RightsHolder  string
	Contact       string
	Hashes        []uint64
	Embeddings    [][]float64
	ClassifierRef string
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*style.ProtectedStyle, error) {
	entity := &style.ProtectedStyle{
		Name:          input.Name,
		RightsHolder:  input.RightsHolder,
		Contact:       input.Contact,
		Status:        style.StatusActive,
		Hashes:        input.Hashes,
		Embeddings:    input.Embeddings,
		ClassifierRef: input.ClassifierRef,
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to register style: %w", err)
	}

	s.announce(ctx, entity.ID)
	return entity, nil
}

func (s *Service) AppendSamples(ctx context.Context, id uuid.UUID, hashes []uint64, embeddings [][]float64) (*style.ProtectedStyle, error) {
	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.AppendSamples(hashes, embeddings)
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to append samples: %w", err)
	}

	s.announce(ctx, entity.ID)
	return entity, nil
}

// Suspend retires a style from matching while keeping the row for
// audit linkage. There is no delete.
func (s *Service) Suspend(ctx context.Context, id uuid.UUID) (*style.ProtectedStyle, error) {
	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.Status = style.StatusSuspended
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to suspend style: %w", err)
	}

	s.announce(ctx, entity.ID)
	return entity, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*style.ProtectedStyle, error) {
	return s.repo.Get(ctx, id)
}

// announce is best-effort: the interval refresh remains the
// correctness backstop when the publish fails.
func (s *Service) announce(ctx context.Context, id uuid.UUID) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.TypeRegistryChanged, events.RegistryChangedEvent{
		StyleID: id.String(),
	})
	if err != nil {
		s.logger.WithError(err).Warn("failed to publish registry change event")
	}
}
