package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArtSentry/StyleGate/pkg/app/evaluator"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
)

func newEvaluator(values map[string]float64) *evaluator.Evaluator {
	return evaluator.NewEvaluator(evaluator.Thresholds{Version: 1, Values: values})
}

func TestEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name          string
		score         float64
		threshold     float64
		wantViolation bool
	}{
		{
			name:          "score above threshold is a violation",
			score:         0.9,
			threshold:     0.75,
			wantViolation: true,
		},
		{
			name:          "score below threshold is not a violation",
			score:         0.1,
			threshold:     0.75,
			wantViolation: false,
		},
		{
			// Strict inequality: equal means allow.
			name:          "score equal to threshold is not a violation",
			score:         0.75,
			threshold:     0.75,
			wantViolation: false,
		},
		{
			name:          "zero score zero threshold is not a violation",
			score:         0,
			threshold:     0,
			wantViolation: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := newEvaluator(map[string]float64{"jailbreak": tt.threshold})

			result := eval.Evaluate(tt.score, validation.CategoryJailbreak, validation.MethodSemantic, "")

			assert.Equal(t, tt.wantViolation, result.Violation)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.threshold, result.Threshold)
			if tt.wantViolation {
				assert.Equal(t, validation.CategoryJailbreak, result.Category)
			} else {
				assert.Equal(t, validation.CategoryNone, result.Category)
			}
			assert.NotEmpty(t, result.Rationale)
		})
	}
}

func TestEvaluator_ThresholdFor_Default(t *testing.T) {
	eval := newEvaluator(map[string]float64{})

	assert.Equal(t, 0.75, eval.ThresholdFor(validation.CategoryIPMimicry))
}

func TestEvaluator_Swap_TakesEffectForNextEvaluation(t *testing.T) {
	eval := newEvaluator(map[string]float64{"jailbreak": 0.9})

	result := eval.Evaluate(0.8, validation.CategoryJailbreak, validation.MethodSemantic, "")
	assert.False(t, result.Violation)

	swapped := eval.Swap(evaluator.Thresholds{
		Version: 2,
		Values:  map[string]float64{"jailbreak": 0.5},
	})
	assert.True(t, swapped)

	result = eval.Evaluate(0.8, validation.CategoryJailbreak, validation.MethodSemantic, "")
	assert.True(t, result.Violation)
	assert.Equal(t, 0.5, result.Threshold)
}

func TestEvaluator_Swap_IgnoresStaleVersion(t *testing.T) {
	eval := newEvaluator(map[string]float64{"jailbreak": 0.9})

	swapped := eval.Swap(evaluator.Thresholds{
		Version: 1,
		Values:  map[string]float64{"jailbreak": 0.1},
	})

	assert.False(t, swapped)
	assert.Equal(t, 0.9, eval.ThresholdFor(validation.CategoryJailbreak))
}

func TestValidateThresholds(t *testing.T) {
	assert.NoError(t, evaluator.ValidateThresholds(map[string]float64{"jailbreak": 0.3}))
	assert.Error(t, evaluator.ValidateThresholds(map[string]float64{"jailbreak": 1.5}))
	assert.Error(t, evaluator.ValidateThresholds(map[string]float64{"jailbreak": -0.1}))
}
