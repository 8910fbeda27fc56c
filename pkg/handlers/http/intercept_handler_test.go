package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditlogMocks "github.com/ArtSentry/StyleGate/pkg/app/auditlog/mocks"
	"github.com/ArtSentry/StyleGate/pkg/app/evaluator"
	"github.com/ArtSentry/StyleGate/pkg/app/fingerprint"
	"github.com/ArtSentry/StyleGate/pkg/app/orchestrator"
	"github.com/ArtSentry/StyleGate/pkg/app/registry"
	embeddingMocks "github.com/ArtSentry/StyleGate/pkg/domain/embedding/mocks"
	styleMocks "github.com/ArtSentry/StyleGate/pkg/domain/style/mocks"
	"github.com/ArtSentry/StyleGate/pkg/infra/backend"
	backendMocks "github.com/ArtSentry/StyleGate/pkg/infra/backend/mocks"
	"github.com/ArtSentry/StyleGate/pkg/infra/oracle"
	oracleMocks "github.com/ArtSentry/StyleGate/pkg/infra/oracle/mocks"
)

type interceptFixture struct {
	app     *fiber.App
	score   *oracleMocks.ScoreClient
	backend *backendMocks.Client
}

func newInterceptFixture() *interceptFixture {
	logger := logrus.New()
	score := new(oracleMocks.ScoreClient)
	backendClient := new(backendMocks.Client)
	auditor := new(auditlogMocks.Writer)
	auditor.On("Record", mock.Anything, mock.Anything).Return()

	eval := evaluator.NewEvaluator(evaluator.Thresholds{
		Version: 1,
		Values:  map[string]float64{"jailbreak": 0.75, "ip_mimicry": 0.75},
	})
	fingerprinter := fingerprint.NewFingerprinter(
		logger, new(oracleMocks.VisionClient), new(embeddingMocks.Creator), eval,
	)
	cache := registry.NewCache(logger, new(styleMocks.Repository), time.Minute)

	o := orchestrator.NewOrchestrator(
		logger, score, backendClient, fingerprinter, eval, cache, auditor, orchestrator.Timeouts{},
	)

	app := fiber.New()
	app.Post("/v1/interceptions", NewInterceptHandler(logger, o).Handle)
	return &interceptFixture{app: app, score: score, backend: backendClient}
}

func postInterception(t *testing.T, app *fiber.App, payload string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/v1/interceptions", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer caller-token")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestInterceptHandler_MissingPrompt(t *testing.T) {
	f := newInterceptFixture()

	status, body := postInterception(t, f.app, `{"user_id":"user-1"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "prompt is required", body["error"])
	f.score.AssertNotCalled(t, "AnalyzePrompt", mock.Anything, mock.Anything)
}

func TestInterceptHandler_MissingUserID(t *testing.T) {
	f := newInterceptFixture()

	status, body := postInterception(t, f.app, `{"prompt":"hello"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "user_id is required", body["error"])
}

func TestInterceptHandler_MalformedBody(t *testing.T) {
	f := newInterceptFixture()

	status, body := postInterception(t, f.app, `{not json`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestInterceptHandler_BlockedJailbreak(t *testing.T) {
	f := newInterceptFixture()
	f.score.On("AnalyzePrompt", mock.Anything, "do something forbidden").
		Return(&oracle.ScoreResult{Confidence: 0.92, Category: "jailbreak"}, nil)

	status, body := postInterception(t, f.app, `{"user_id":"user-1","prompt":"do something forbidden"}`)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "jailbreak", body["category"])
	assert.Equal(t, orchestrator.MessageJailbreak, body["message"])
	assert.Equal(t, 0.92, body["score"])
	assert.Equal(t, 0.75, body["threshold"])
	assert.NotEmpty(t, body["intervention_id"])
	f.backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestInterceptHandler_OracleDown_ServiceUnavailable(t *testing.T) {
	f := newInterceptFixture()
	f.score.On("AnalyzePrompt", mock.Anything, mock.Anything).
		Return(nil, oracle.ErrOracleFailure)

	status, body := postInterception(t, f.app, `{"user_id":"user-1","prompt":"hello"}`)

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "service_unavailable", body["category"])
}

func TestInterceptHandler_Delivered(t *testing.T) {
	f := newInterceptFixture()
	f.score.On("AnalyzePrompt", mock.Anything, "write a haiku").
		Return(&oracle.ScoreResult{Confidence: 0.05, Category: "none"}, nil)
	f.backend.On("Generate", mock.Anything, "write a haiku", "Bearer caller-token").
		Return(&backend.Response{Content: []byte("old pond, frog jumps"), ContentType: "text"}, nil)

	status, body := postInterception(t, f.app, `{"user_id":"user-1","prompt":"write a haiku"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "old pond, frog jumps", body["content"])
	assert.Equal(t, "text", body["content_type"])
	assert.NotEmpty(t, body["intervention_id"])
}
