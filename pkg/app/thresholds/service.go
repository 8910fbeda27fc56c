package thresholds

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/evaluator"
	"github.com/ArtSentry/StyleGate/pkg/infra/events"
)

// Service administers the hot-swappable threshold configuration.
// Updates are runtime state only: they swap the local evaluator
// atomically and are broadcast to peer processes over pub/sub.
type Service struct {
	logger    *logrus.Logger
	evaluator *evaluator.Evaluator
	publisher events.Publisher
}

func NewService(logger *logrus.Logger, eval *evaluator.Evaluator, publisher events.Publisher) *Service {
	return &Service{
		logger:    logger,
		evaluator: eval,
		publisher: publisher,
	}
}

func (s *Service) Current() evaluator.Thresholds {
	return s.evaluator.Snapshot()
}

func (s *Service) Update(ctx context.Context, values map[string]float64) (evaluator.Thresholds, error) {
	if err := evaluator.ValidateThresholds(values); err != nil {
		return evaluator.Thresholds{}, err
	}

	next := evaluator.Thresholds{
		// Wall-clock versions keep peer processes monotonic without a
		// coordination round.
		Version: time.Now().UnixNano(),
		Values:  values,
	}
	s.evaluator.Swap(next)

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, events.TypeThresholdsUpdated, events.ThresholdsUpdatedEvent{
			Version:    next.Version,
			Thresholds: values,
		})
		if err != nil {
			s.logger.WithError(err).Warn("failed to publish threshold update event")
		}
	}

	s.logger.WithField("version", next.Version).Info("threshold configuration updated")
	return next, nil
}
