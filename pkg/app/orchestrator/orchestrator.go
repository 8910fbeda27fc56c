package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/auditlog"
	"github.com/ArtSentry/StyleGate/pkg/app/evaluator"
	"github.com/ArtSentry/StyleGate/pkg/app/fingerprint"
	"github.com/ArtSentry/StyleGate/pkg/app/registry"
	"github.com/ArtSentry/StyleGate/pkg/domain/audit"
	"github.com/ArtSentry/StyleGate/pkg/domain/transaction"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
	"github.com/ArtSentry/StyleGate/pkg/infra/backend"
	"github.com/ArtSentry/StyleGate/pkg/infra/oracle"
	"github.com/ArtSentry/StyleGate/pkg/infra/prometheus"
)

// Fixed user-facing messages, one per block category.
const (
	MessageJailbreak          = "Your request was blocked by the content policy."
	MessageIPMimicry          = "The generated content too closely matches a protected artistic style and was withheld."
	MessageServiceUnavailable = "The service is temporarily unavailable. Please try again later."
)

// Outcome is the caller-facing result of one transaction: either
// delivered content or a structured block.
type Outcome struct {
	Delivered      bool
	Content        []byte
	ContentType    string
	Category       validation.Category
	Message        string
	Score          float64
	Threshold      float64
	InterventionID uuid.UUID
}

type Timeouts struct {
	Gate1   time.Duration
	Backend time.Duration
	// Gate2 bounds the whole fingerprint pass, classifier calls
	// included.
	Gate2 time.Duration
}

// Orchestrator drives one transaction through the dual-gate state
// machine: RECEIVED -> GATE1_EVAL -> FORWARDING -> GATE2_EVAL ->
// DELIVERED | BLOCKED. Both gates fail closed; the audit write is
// invoked exactly once per terminal outcome and can never change it.
type Orchestrator struct {
	logger        *logrus.Logger
	score         oracle.ScoreClient
	backend       backend.Client
	fingerprinter *fingerprint.Fingerprinter
	evaluator     *evaluator.Evaluator
	registry      *registry.Cache
	auditor       auditlog.Writer
	timeouts      Timeouts
}

func NewOrchestrator(
	logger *logrus.Logger,
	score oracle.ScoreClient,
	backendClient backend.Client,
	fingerprinter *fingerprint.Fingerprinter,
	eval *evaluator.Evaluator,
	reg *registry.Cache,
	auditor auditlog.Writer,
	timeouts Timeouts,
) *Orchestrator {
	if timeouts.Gate1 <= 0 {
		timeouts.Gate1 = 10 * time.Second
	}
	if timeouts.Backend <= 0 {
		timeouts.Backend = 60 * time.Second
	}
	if timeouts.Gate2 <= 0 {
		timeouts.Gate2 = 30 * time.Second
	}
	return &Orchestrator{
		logger:        logger,
		score:         score,
		backend:       backendClient,
		fingerprinter: fingerprinter,
		evaluator:     eval,
		registry:      reg,
		auditor:       auditor,
		timeouts:      timeouts,
	}
}

// Process runs the transaction to a terminal state. callerAuth is the
// caller's authentication context, forwarded opaquely to the backend.
func (o *Orchestrator) Process(ctx context.Context, tx *transaction.Transaction, callerAuth string) *Outcome {
	tx.State = transaction.StateGate1Eval

	result, err := o.runGate1(ctx, tx)
	if err != nil {
		return o.block(ctx, tx, 1, o.unavailableResult(err), nil)
	}
	if result.Violation {
		return o.block(ctx, tx, 1, result, nil)
	}

	tx.State = transaction.StateForwarding
	generated, err := o.forward(ctx, tx, callerAuth)
	if err != nil {
		// Downstream failure is a service error, not a policy block.
		o.logger.WithError(err).WithField("transaction_id", tx.ID).Warn("generative backend call failed")
		return o.block(ctx, tx, 1, o.unavailableResult(err), nil)
	}
	tx.Content = generated.Content
	tx.ContentType = generated.ContentType

	tx.State = transaction.StateGate2Eval
	gate2Result, matchedStyle, err := o.runGate2(ctx, tx)
	if err != nil {
		return o.block(ctx, tx, 2, o.unavailableResult(err), nil)
	}
	if gate2Result.Violation {
		return o.block(ctx, tx, 2, gate2Result, matchedStyle)
	}

	return o.deliver(ctx, tx, gate2Result)
}

// runGate1 evaluates the prompt through the semantic-analysis oracle.
// Oracle failure (including timeout) is returned as an error so the
// caller fails closed.
func (o *Orchestrator) runGate1(ctx context.Context, tx *transaction.Transaction) (validation.Result, error) {
	start := time.Now()
	defer func() {
		prometheus.GateLatency.WithLabelValues("gate1").Observe(float64(time.Since(start).Milliseconds()))
	}()

	gateCtx, cancel := context.WithTimeout(ctx, o.timeouts.Gate1)
	defer cancel()

	scored, err := o.score.AnalyzePrompt(gateCtx, tx.Prompt)
	if err != nil {
		return validation.Result{}, err
	}

	rationale := strings.Join(scored.ReasoningSteps, "; ")
	return o.evaluator.Evaluate(scored.Confidence, validation.CategoryJailbreak, validation.MethodSemantic, rationale), nil
}

func (o *Orchestrator) forward(ctx context.Context, tx *transaction.Transaction, callerAuth string) (*backend.Response, error) {
	backendCtx, cancel := context.WithTimeout(ctx, o.timeouts.Backend)
	defer cancel()

	generated, err := o.backend.Generate(backendCtx, tx.Prompt, callerAuth)
	if err != nil {
		return nil, err
	}
	if len(generated.Content) == 0 {
		return nil, fmt.Errorf("%w: empty content", backend.ErrBackendUnavailable)
	}
	return generated, nil
}

// runGate2 fingerprints visual content against the registry snapshot.
// Text-only responses pass through with a clean result.
func (o *Orchestrator) runGate2(ctx context.Context, tx *transaction.Transaction) (validation.Result, *uuid.UUID, error) {
	start := time.Now()
	defer func() {
		prometheus.GateLatency.WithLabelValues("gate2").Observe(float64(time.Since(start).Milliseconds()))
	}()

	if !tx.HasVisualContent() {
		return validation.Result{
			Category:  validation.CategoryNone,
			Method:    validation.MethodNone,
			Rationale: "no visual content to check",
			Threshold: o.evaluator.ThresholdFor(validation.CategoryIPMimicry),
		}, nil, nil
	}

	gateCtx, cancel := context.WithTimeout(ctx, o.timeouts.Gate2)
	defer cancel()

	match, err := o.fingerprinter.Match(gateCtx, tx.Content, o.registry.ActiveStyles())
	if err != nil {
		return validation.Result{}, nil, err
	}

	rationale := fmt.Sprintf("fingerprint stage %s, similarity %.2f", match.Stage, match.Similarity)
	if match.StyleID != nil {
		rationale = fmt.Sprintf("%s, matched style %s", rationale, match.StyleID)
	}

	result := o.evaluator.Evaluate(match.Similarity, validation.CategoryIPMimicry, match.Stage, rationale)
	return result, match.StyleID, nil
}

func (o *Orchestrator) block(
	ctx context.Context,
	tx *transaction.Transaction,
	gate int,
	result validation.Result,
	matchedStyle *uuid.UUID,
) *Outcome {
	tx.State = transaction.StateBlocked
	interventionID := uuid.New()

	o.auditor.Record(ctx, auditlog.Outcome{
		InterventionID: interventionID,
		Transaction:    tx,
		Gate:           gate,
		Result:         result,
		Action:         audit.ActionBlocked,
		MatchedStyleID: matchedStyle,
	})

	prometheus.TransactionsTotal.WithLabelValues("blocked", string(result.Category)).Inc()
	o.logger.WithFields(logrus.Fields{
		"transaction_id":  tx.ID,
		"intervention_id": interventionID,
		"gate":            gate,
		"category":        result.Category,
		"score":           result.Score,
	}).Info("transaction blocked")

	return &Outcome{
		Delivered:      false,
		Category:       result.Category,
		Message:        messageFor(result.Category),
		Score:          result.Score,
		Threshold:      result.Threshold,
		InterventionID: interventionID,
	}
}

func (o *Orchestrator) deliver(ctx context.Context, tx *transaction.Transaction, result validation.Result) *Outcome {
	tx.State = transaction.StateDelivered
	interventionID := uuid.New()

	o.auditor.Record(ctx, auditlog.Outcome{
		InterventionID: interventionID,
		Transaction:    tx,
		Gate:           2,
		Result:         result,
		Action:         audit.ActionAllowed,
	})

	prometheus.TransactionsTotal.WithLabelValues("delivered", string(validation.CategoryNone)).Inc()
	o.logger.WithFields(logrus.Fields{
		"transaction_id":  tx.ID,
		"intervention_id": interventionID,
	}).Debug("transaction delivered")

	return &Outcome{
		Delivered:      true,
		Content:        tx.Content,
		ContentType:    tx.ContentType,
		Category:       validation.CategoryNone,
		InterventionID: interventionID,
	}
}

func (o *Orchestrator) unavailableResult(err error) validation.Result {
	return validation.Result{
		Violation: true,
		Category:  validation.CategoryServiceUnavailable,
		Rationale: err.Error(),
		Method:    validation.MethodNone,
	}
}

func messageFor(category validation.Category) string {
	switch category {
	case validation.CategoryJailbreak:
		return MessageJailbreak
	case validation.CategoryIPMimicry:
		return MessageIPMimicry
	default:
		return MessageServiceUnavailable
	}
}
