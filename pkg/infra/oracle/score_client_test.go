package oracle_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ArtSentry/StyleGate/pkg/infra/httpx"
	httpxMocks "github.com/ArtSentry/StyleGate/pkg/infra/httpx/mocks"
	"github.com/ArtSentry/StyleGate/pkg/infra/oracle"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newScoreClient(client httpx.Client) oracle.ScoreClient {
	return oracle.NewHTTPScoreClient(
		client,
		logrus.New(),
		httpx.NewCircuitBreaker("test", time.Second, 5),
		oracle.Credentials{BaseURL: "http://oracle.local", Token: "secret"},
	)
}

func TestHTTPScoreClient_AnalyzePrompt(t *testing.T) {
	client := new(httpxMocks.Client)
	client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/v1/analyze" &&
			req.Method == http.MethodPost &&
			req.Header.Get("Token") == "secret"
	})).Return(jsonResponse(http.StatusOK, `{
		"violation_detected": true,
		"confidence": 0.9,
		"category": "jailbreak",
		"reasoning_steps": ["instruction override"]
	}`), nil)

	result, err := newScoreClient(client).AnalyzePrompt(context.Background(), "bad prompt")

	assert.NoError(t, err)
	assert.True(t, result.ViolationDetected)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, []string{"instruction override"}, result.ReasoningSteps)
}

func TestHTTPScoreClient_NonOKStatus(t *testing.T) {
	client := new(httpxMocks.Client)
	client.On("Do", mock.Anything).Return(jsonResponse(http.StatusInternalServerError, `{}`), nil)

	_, err := newScoreClient(client).AnalyzePrompt(context.Background(), "prompt")

	assert.ErrorIs(t, err, oracle.ErrOracleFailure)
}

func TestHTTPScoreClient_TransportFailure(t *testing.T) {
	client := new(httpxMocks.Client)
	client.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := newScoreClient(client).AnalyzePrompt(context.Background(), "prompt")

	assert.ErrorIs(t, err, oracle.ErrOracleFailure)
}

func TestHTTPScoreClient_ConfidenceOutOfRange(t *testing.T) {
	client := new(httpxMocks.Client)
	client.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, `{"confidence": 42}`), nil)

	_, err := newScoreClient(client).AnalyzePrompt(context.Background(), "prompt")

	assert.ErrorIs(t, err, oracle.ErrOracleFailure)
}
