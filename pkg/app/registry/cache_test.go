package registry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ArtSentry/StyleGate/pkg/app/registry"
	"github.com/ArtSentry/StyleGate/pkg/domain/style"
	"github.com/ArtSentry/StyleGate/pkg/domain/style/mocks"
)

func TestCache_ActiveStyles_EmptyBeforeRefresh(t *testing.T) {
	cache := registry.NewCache(logrus.New(), new(mocks.Repository), time.Minute)

	assert.Empty(t, cache.ActiveStyles())
}

func TestCache_Refresh_InstallsSnapshot(t *testing.T) {
	repo := new(mocks.Repository)
	styles := []style.ProtectedStyle{
		{ID: uuid.New(), Name: "ukiyo-e-revival", Status: style.StatusActive},
	}
	repo.On("ListActive", mock.Anything).Return(styles, nil).Once()

	cache := registry.NewCache(logrus.New(), repo, time.Minute)

	assert.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, styles, cache.ActiveStyles())
	repo.AssertExpectations(t)
}

func TestCache_Refresh_FailureKeepsStaleSnapshot(t *testing.T) {
	repo := new(mocks.Repository)
	styles := []style.ProtectedStyle{
		{ID: uuid.New(), Name: "ukiyo-e-revival", Status: style.StatusActive},
	}
	repo.On("ListActive", mock.Anything).Return(styles, nil).Once()
	repo.On("ListActive", mock.Anything).Return(nil, errors.New("store unreachable")).Once()

	cache := registry.NewCache(logrus.New(), repo, time.Minute)

	assert.NoError(t, cache.Refresh(context.Background()))
	assert.Error(t, cache.Refresh(context.Background()))

	// The previous snapshot keeps serving readers.
	assert.Equal(t, styles, cache.ActiveStyles())
	repo.AssertExpectations(t)
}

func TestCache_Run_RefreshesOnInterval(t *testing.T) {
	repo := new(mocks.Repository)
	refreshed := make(chan struct{}, 8)
	repo.On("ListActive", mock.Anything).
		Run(func(mock.Arguments) { refreshed <- struct{}{} }).
		Return([]style.ProtectedStyle{}, nil)

	cache := registry.NewCache(logrus.New(), repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.Run(ctx)
		close(done)
	}()

	// Initial refresh plus at least one ticker firing.
	for i := 0; i < 2; i++ {
		select {
		case <-refreshed:
		case <-time.After(time.Second):
			t.Fatal("expected a registry refresh")
		}
	}

	cancel()
	<-done
}
