package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Handler consumes the raw event payload of one envelope type.
type Handler func(ctx context.Context, payload json.RawMessage)

// Listener subscribes to the gateway event channel and dispatches
// envelopes to handlers registered by event type.
type Listener struct {
	logger   *logrus.Logger
	client   *redis.Client
	handlers map[string]Handler
}

func NewListener(logger *logrus.Logger, client *redis.Client) *Listener {
	return &Listener{
		logger:   logger,
		client:   client,
		handlers: make(map[string]Handler),
	}
}

func (l *Listener) Register(eventType string, handler Handler) {
	l.handlers[eventType] = handler
}

// Listen blocks until ctx is cancelled, reconnecting on subscription
// loss.
func (l *Listener) Listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("event listener shutting down")
			return
		default:
		}

		l.listenWithReconnect(ctx)

		if ctx.Err() != nil {
			return
		}

		l.logger.Warn("event subscription lost, reconnecting in 1s")
		time.Sleep(time.Second)
	}
}

func (l *Listener) listenWithReconnect(ctx context.Context) {
	pubSub := l.client.Subscribe(ctx, Channel)
	defer func() { _ = pubSub.Close() }()

	go func() {
		<-ctx.Done()
		_ = pubSub.Close()
	}()

	for msg := range pubSub.Channel() {
		select {
		case <-ctx.Done():
			return
		default:
			l.handleMessage(ctx, msg.Payload)
		}
	}
}

func (l *Listener) handleMessage(ctx context.Context, payload string) {
	var envelope Envelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		l.logger.WithError(err).Error("error decoding event envelope")
		return
	}

	handler, ok := l.handlers[envelope.Type]
	if !ok {
		l.logger.WithField("type", envelope.Type).Debug("no handler registered for event type")
		return
	}

	handler(ctx, envelope.Event)
}
