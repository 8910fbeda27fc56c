package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/infra/httpx"
)

const analyzePath = "/v1/analyze"

type scoreRequest struct {
	Prompt string `json:"prompt"`
}

// HTTPScoreClient calls the semantic-analysis oracle over HTTP, wrapped
// in a circuit breaker so a flapping oracle fails fast instead of
// holding every gate open until timeout.
type HTTPScoreClient struct {
	client         httpx.Client
	logger         *logrus.Logger
	circuitBreaker httpx.CircuitBreaker
	credentials    Credentials
}

func NewHTTPScoreClient(
	client httpx.Client,
	logger *logrus.Logger,
	circuitBreaker httpx.CircuitBreaker,
	credentials Credentials,
) ScoreClient {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPScoreClient{
		client:         client,
		logger:         logger,
		circuitBreaker: circuitBreaker,
		credentials:    credentials,
	}
}

func (c *HTTPScoreClient) AnalyzePrompt(ctx context.Context, prompt string) (*ScoreResult, error) {
	var result *ScoreResult
	var err error

	err = c.circuitBreaker.Execute(func() error {
		result, err = c.executeAnalyzeRequest(ctx, prompt)
		return err
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).Error("semantic analysis failed (circuit breaker)")
		}
		return nil, fmt.Errorf("%w: %s", ErrOracleFailure, err)
	}

	return result, nil
}

func (c *HTTPScoreClient) executeAnalyzeRequest(ctx context.Context, prompt string) (*ScoreResult, error) {
	body, err := json.Marshal(scoreRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.credentials.BaseURL+analyzePath,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.credentials.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).Error("failed to call semantic analysis oracle")
		}
		return nil, fmt.Errorf("failed to call semantic analysis oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode).Error("semantic analysis oracle returned non-200 status")
		return nil, fmt.Errorf("semantic analysis oracle status %d", resp.StatusCode)
	}

	var result ScoreResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid analyze response: %w", err)
	}

	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("analyze confidence %f out of range", result.Confidence)
	}

	return &result, nil
}
