package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ArtSentry/StyleGate/pkg/app/evaluator"
	"github.com/ArtSentry/StyleGate/pkg/app/thresholds"
	eventMocks "github.com/ArtSentry/StyleGate/pkg/infra/events/mocks"
)

func newThresholdsApp() (*fiber.App, *evaluator.Evaluator) {
	logger := logrus.New()
	eval := evaluator.NewEvaluator(evaluator.Thresholds{
		Version: 1,
		Values:  map[string]float64{"jailbreak": 0.75, "ip_mimicry": 0.75},
	})
	publisher := new(eventMocks.Publisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := thresholds.NewService(logger, eval, publisher)

	app := fiber.New()
	app.Get("/api/v1/thresholds", NewGetThresholdsHandler(logger, service).Handle)
	app.Put("/api/v1/thresholds", NewUpdateThresholdsHandler(logger, service).Handle)
	return app, eval
}

func TestGetThresholdsHandler_ReturnsCurrentSnapshot(t *testing.T) {
	app, _ := newThresholdsApp()

	req := httptest.NewRequest("GET", "/api/v1/thresholds", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body thresholdsResponse
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, int64(1), body.Version)
	assert.Equal(t, 0.75, body.Values["jailbreak"])
}

func TestUpdateThresholdsHandler_SwapsEvaluator(t *testing.T) {
	app, eval := newThresholdsApp()

	payload := `{"values": {"jailbreak": 0.6, "ip_mimicry": 0.8}}`
	req := httptest.NewRequest("PUT", "/api/v1/thresholds", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body thresholdsResponse
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Greater(t, body.Version, int64(1))
	assert.Equal(t, 0.6, body.Values["jailbreak"])

	snapshot := eval.Snapshot()
	assert.Equal(t, 0.6, snapshot.Values["jailbreak"])
	assert.Equal(t, 0.8, snapshot.Values["ip_mimicry"])
}

func TestUpdateThresholdsHandler_RejectsOutOfRange(t *testing.T) {
	app, eval := newThresholdsApp()

	payload := `{"values": {"jailbreak": 1.5}}`
	req := httptest.NewRequest("PUT", "/api/v1/thresholds", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0.75, eval.Snapshot().Values["jailbreak"])
}

func TestUpdateThresholdsHandler_RejectsEmptyValues(t *testing.T) {
	app, _ := newThresholdsApp()

	req := httptest.NewRequest("PUT", "/api/v1/thresholds", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
