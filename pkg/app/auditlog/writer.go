package auditlog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/domain/audit"
	"github.com/ArtSentry/StyleGate/pkg/domain/transaction"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
	"github.com/ArtSentry/StyleGate/pkg/infra/prometheus"
)

// Outcome carries everything the writer needs to build one record.
type Outcome struct {
	InterventionID uuid.UUID
	Transaction    *transaction.Transaction
	Gate           int
	Result         validation.Result
	Action         audit.Action
	MatchedStyleID *uuid.UUID
}

//go:generate mockery --name=Writer --dir=. --output=./mocks --filename=audit_writer_mock.go --case=underscore --with-expecter
type Writer interface {
	// Record persists the outcome. It never surfaces failure: a failed
	// write degrades to the retry buffer, never to a changed
	// transaction result.
	Record(ctx context.Context, outcome Outcome)
	// RunRetryLoop drives background flushing of buffered records; it
	// blocks until ctx is cancelled.
	RunRetryLoop(ctx context.Context)
	// Flush makes a final synchronous drain attempt (shutdown path).
	Flush(ctx context.Context)
}

type Config struct {
	BufferSize    int
	WriteTimeout  time.Duration
	RetryBase     time.Duration
	RetryCap      time.Duration
	MaxAttempts   int
	RetentionDays int
}

type writer struct {
	logger *logrus.Logger
	repo   audit.Repository
	config Config

	mu     sync.Mutex
	buffer []*audit.Record
}

func NewWriter(logger *logrus.Logger, repo audit.Repository, config Config) Writer {
	if config.BufferSize <= 0 {
		config.BufferSize = 1024
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	if config.RetryBase <= 0 {
		config.RetryBase = time.Second
	}
	if config.RetryCap <= 0 {
		config.RetryCap = time.Minute
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 10
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = 365
	}
	return &writer{
		logger: logger,
		repo:   repo,
		config: config,
	}
}

func (w *writer) Record(ctx context.Context, outcome Outcome) {
	record := w.buildRecord(outcome)

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.config.WriteTimeout)
	defer cancel()

	if err := w.repo.Put(writeCtx, record); err != nil {
		w.logger.WithError(err).WithField(
			"intervention_id", record.InterventionID,
		).Warn("audit write failed, buffering for retry")
		w.enqueue(record)
	}
}

func (w *writer) buildRecord(outcome Outcome) *audit.Record {
	tx := outcome.Transaction
	// Raw prompt and content are hashed, never stored: bounded record
	// size and no verbatim sensitive payloads in the audit trail.
	return &audit.Record{
		InterventionID: outcome.InterventionID,
		Timestamp:      time.Now(),
		UserID:         tx.UserID,
		Gate:           outcome.Gate,
		Category:       outcome.Result.Category,
		Action:         outcome.Action,
		Score:          outcome.Result.Score,
		Threshold:      outcome.Result.Threshold,
		PromptHash:     hashContent([]byte(tx.Prompt)),
		ContentHash:    hashContent(tx.Content),
		Rationale:      outcome.Result.Rationale,
		MatchedStyleID: outcome.MatchedStyleID,
		Method:         outcome.Result.Method,
		RetainUntil:    time.Now().AddDate(0, 0, w.config.RetentionDays),
	}
}

// enqueue appends to the bounded buffer, evicting the oldest record
// when full. Eviction is the only path that loses a record and it is
// always announced.
func (w *writer) enqueue(record *audit.Record) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buffer) >= w.config.BufferSize {
		evicted := w.buffer[0]
		w.buffer = w.buffer[1:]
		prometheus.AuditBufferEvictions.Inc()
		w.logger.WithField(
			"intervention_id", evicted.InterventionID,
		).Error("audit buffer full, evicting oldest unflushed record (data loss)")
	}

	w.buffer = append(w.buffer, record)
	prometheus.AuditBufferDepth.Set(float64(len(w.buffer)))
}

// RunRetryLoop flushes buffered records oldest-first with exponential
// backoff until ctx is cancelled. The attempt counter caps the delay;
// records themselves are retried indefinitely (they only leave the
// buffer by success or capacity eviction).
func (w *writer) RunRetryLoop(ctx context.Context) {
	attempt := 0
	for {
		delay := backoffDelay(w.config.RetryBase, w.config.RetryCap, attempt)

		select {
		case <-ctx.Done():
			w.logger.Info("audit retry loop shutting down")
			return
		case <-time.After(delay):
		}

		if w.flushOnce(ctx) {
			attempt = 0
		} else if attempt < w.config.MaxAttempts {
			attempt++
		}
	}
}

// flushOnce drains as much of the buffer as the store will take, in
// original order, stopping at the first failure. Returns true when the
// buffer is empty afterwards.
func (w *writer) flushOnce(ctx context.Context) bool {
	for {
		record := w.peek()
		if record == nil {
			return true
		}

		writeCtx, cancel := context.WithTimeout(ctx, w.config.WriteTimeout)
		err := w.repo.Put(writeCtx, record)
		cancel()

		if err != nil {
			w.logger.WithError(err).Debug("audit buffer flush attempt failed")
			return false
		}
		w.dequeue(record)
	}
}

// Flush makes a final synchronous drain attempt; used on shutdown.
// Anything still buffered afterwards is lost with the process, which
// is the documented durability limitation of the in-memory buffer.
func (w *writer) Flush(ctx context.Context) {
	if !w.flushOnce(ctx) {
		w.mu.Lock()
		remaining := len(w.buffer)
		w.mu.Unlock()
		w.logger.WithField("remaining", remaining).Error("audit buffer not fully flushed on shutdown")
	}
}

func (w *writer) peek() *audit.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buffer) == 0 {
		return nil
	}
	return w.buffer[0]
}

func (w *writer) dequeue(record *audit.Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buffer) > 0 && w.buffer[0] == record {
		w.buffer = w.buffer[1:]
	}
	prometheus.AuditBufferDepth.Set(float64(len(w.buffer)))
}

func backoffDelay(base, cap time.Duration, attempt int) time.Duration {
	delay := base << uint(attempt)
	if delay > cap || delay <= 0 {
		return cap
	}
	return delay
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
