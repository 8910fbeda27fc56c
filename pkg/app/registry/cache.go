package registry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/domain/style"
	"github.com/ArtSentry/StyleGate/pkg/infra/prometheus"
)

// Cache holds an interval-refreshed snapshot of the active protected
// styles. Reads never touch the durable store; a failed refresh keeps
// serving the previous snapshot (fail-available, unlike the gates
// which fail closed).
type Cache struct {
	logger   *logrus.Logger
	repo     style.Repository
	interval time.Duration
	snapshot atomic.Pointer[[]style.ProtectedStyle]
	lastLoad atomic.Pointer[time.Time]
}

func NewCache(logger *logrus.Logger, repo style.Repository, interval time.Duration) *Cache {
	c := &Cache{
		logger:   logger,
		repo:     repo,
		interval: interval,
	}
	empty := make([]style.ProtectedStyle, 0)
	c.snapshot.Store(&empty)
	return c
}

// ActiveStyles returns the current snapshot. The returned slice is
// shared between readers and must not be mutated.
func (c *Cache) ActiveStyles() []style.ProtectedStyle {
	return *c.snapshot.Load()
}

// Refresh reloads the snapshot from the durable store. On failure the
// previous snapshot stays in place and a staleness warning is logged.
func (c *Cache) Refresh(ctx context.Context) error {
	styles, err := c.repo.ListActive(ctx)
	if err != nil {
		prometheus.RegistryStaleRefreshes.Inc()
		c.logger.WithError(err).WithField(
			"last_load", c.lastLoadTime().Format(time.RFC3339),
		).Warn("registry refresh failed, serving stale snapshot")
		return err
	}

	c.snapshot.Store(&styles)
	now := time.Now()
	c.lastLoad.Store(&now)
	c.logger.WithField("styles", len(styles)).Debug("registry snapshot refreshed")
	return nil
}

// Run refreshes on the configured interval until ctx is cancelled. An
// initial refresh runs immediately so the first requests do not see an
// empty registry.
func (c *Cache) Run(ctx context.Context) {
	_ = c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("registry refresh loop shutting down")
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

func (c *Cache) lastLoadTime() time.Time {
	if t := c.lastLoad.Load(); t != nil {
		return *t
	}
	return time.Time{}
}
