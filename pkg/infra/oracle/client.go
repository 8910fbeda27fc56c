package oracle

import (
	"context"
	"errors"
)

// ErrOracleFailure covers every way an oracle call can fail: network
// error, timeout, non-200 status or malformed body. Upstream code
// treats them all identically (fail-closed).
var ErrOracleFailure = errors.New("oracle call failed")

// ScoreResult is the semantic-analysis oracle's verdict on one prompt.
type ScoreResult struct {
	ViolationDetected bool     `json:"violation_detected"`
	Confidence        float64  `json:"confidence"`
	Category          string   `json:"category"`
	ReasoningSteps    []string `json:"reasoning_steps"`
}

// Label is one classification result. Confidence is on the oracle's
// native 0-100 scale.
type Label struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type Credentials struct {
	BaseURL string
	Token   string
}

//go:generate mockery --name=ScoreClient --dir=. --output=./mocks --filename=score_client_mock.go --case=underscore --with-expecter
type ScoreClient interface {
	AnalyzePrompt(ctx context.Context, prompt string) (*ScoreResult, error)
}

//go:generate mockery --name=VisionClient --dir=. --output=./mocks --filename=vision_client_mock.go --case=underscore --with-expecter
type VisionClient interface {
	Classify(ctx context.Context, image []byte, classifierRef string) ([]Label, error)
}
