package evaluator

import (
	"fmt"
	"sync/atomic"

	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
)

// Thresholds is one immutable version of the circuit-breaker
// configuration, keyed by violation category. Updates replace the
// whole structure atomically; in-flight evaluations keep the snapshot
// they started with.
type Thresholds struct {
	Version int64
	Values  map[string]float64
}

const defaultThreshold = 0.75

// Evaluator turns a raw oracle confidence or fingerprint similarity
// into a ValidationResult. It performs no I/O; the only state is the
// current threshold snapshot.
type Evaluator struct {
	config atomic.Pointer[Thresholds]
}

func NewEvaluator(initial Thresholds) *Evaluator {
	e := &Evaluator{}
	e.config.Store(&initial)
	return e
}

// Evaluate compares rawScore against the current threshold for the
// category. The comparison is strictly greater-than: a score equal to
// the threshold is not a violation.
func (e *Evaluator) Evaluate(
	rawScore float64,
	category validation.Category,
	method validation.Method,
	rationale string,
) validation.Result {
	threshold := e.ThresholdFor(category)
	violation := rawScore > threshold

	resultCategory := validation.CategoryNone
	if violation {
		resultCategory = category
	}
	if rationale == "" {
		rationale = fmt.Sprintf("score %.2f against threshold %.2f for %s", rawScore, threshold, category)
	}

	return validation.Result{
		Violation: violation,
		Score:     rawScore,
		Threshold: threshold,
		Category:  resultCategory,
		Rationale: rationale,
		Method:    method,
	}
}

// ThresholdFor returns the configured threshold for a category,
// falling back to the default when the category is unconfigured.
func (e *Evaluator) ThresholdFor(category validation.Category) float64 {
	snapshot := e.config.Load()
	if t, ok := snapshot.Values[string(category)]; ok {
		return t
	}
	return defaultThreshold
}

// Swap installs a new threshold configuration. It takes effect for the
// next Evaluate call; older versions are ignored.
func (e *Evaluator) Swap(next Thresholds) bool {
	for {
		current := e.config.Load()
		if next.Version <= current.Version {
			return false
		}
		if e.config.CompareAndSwap(current, &next) {
			return true
		}
	}
}

// Snapshot returns the current configuration.
func (e *Evaluator) Snapshot() Thresholds {
	return *e.config.Load()
}

// ValidateThresholds rejects values outside [0,1].
func ValidateThresholds(values map[string]float64) error {
	for category, t := range values {
		if t < 0 || t > 1 {
			return fmt.Errorf("threshold for %s must be in [0,1], got %f", category, t)
		}
	}
	return nil
}
