package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/infra/httpx"
)

const generatePath = "/v1/generate"

// ErrBackendUnavailable marks a downstream generative failure. It is
// surfaced to the caller as a service error, never as a policy block.
var ErrBackendUnavailable = errors.New("generative backend unavailable")

// Response is the opaque generated output plus its content-type tag
// ("text" or "image").
type Response struct {
	Content     []byte
	ContentType string
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=backend_client_mock.go --case=underscore --with-expecter
type Client interface {
	Generate(ctx context.Context, prompt, callerAuth string) (*Response, error)
}

type httpClient struct {
	client         httpx.Client
	logger         *logrus.Logger
	circuitBreaker httpx.CircuitBreaker
	baseURL        string
}

func NewHTTPClient(
	client httpx.Client,
	logger *logrus.Logger,
	circuitBreaker httpx.CircuitBreaker,
	baseURL string,
) Client {
	if client == nil {
		client = &http.Client{}
	}
	return &httpClient{
		client:         client,
		logger:         logger,
		circuitBreaker: circuitBreaker,
		baseURL:        baseURL,
	}
}

func (c *httpClient) Generate(ctx context.Context, prompt, callerAuth string) (*Response, error) {
	var result *Response
	var err error

	err = c.circuitBreaker.Execute(func() error {
		result, err = c.executeGenerateRequest(ctx, prompt, callerAuth)
		return err
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).Error("generative backend call failed (circuit breaker)")
		}
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}

	return result, nil
}

func (c *httpClient) executeGenerateRequest(ctx context.Context, prompt, callerAuth string) (*Response, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+generatePath,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Caller authentication context is forwarded untouched.
	if callerAuth != "" {
		req.Header.Set("Authorization", callerAuth)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call generative backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode).Error("generative backend returned non-200 status")
		return nil, fmt.Errorf("generative backend status %d", resp.StatusCode)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("invalid generate response: %w", err)
	}

	content := []byte(generated.Content)
	if generated.ContentType == "image" {
		decoded, err := base64.StdEncoding.DecodeString(generated.Content)
		if err != nil {
			return nil, fmt.Errorf("invalid image payload from backend: %w", err)
		}
		content = decoded
	}

	return &Response{
		Content:     content,
		ContentType: generated.ContentType,
	}, nil
}
