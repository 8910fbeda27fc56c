package http

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/orchestrator"
	"github.com/ArtSentry/StyleGate/pkg/domain/transaction"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
)

type interceptRequest struct {
	UserID string `json:"user_id"`
	Prompt string `json:"prompt"`
}

type deliveredResponse struct {
	Content        string `json:"content"`
	ContentType    string `json:"content_type"`
	InterventionID string `json:"intervention_id"`
}

type blockedResponse struct {
	Category       string  `json:"category"`
	Message        string  `json:"message"`
	Score          float64 `json:"score"`
	Threshold      float64 `json:"threshold"`
	InterventionID string  `json:"intervention_id"`
}

type interceptHandler struct {
	logger       *logrus.Logger
	orchestrator *orchestrator.Orchestrator
}

func NewInterceptHandler(logger *logrus.Logger, o *orchestrator.Orchestrator) Handler {
	return &interceptHandler{
		logger:       logger,
		orchestrator: o,
	}
}

// Handle runs one transaction through both gates. Malformed input is
// rejected here and never reaches the gates.
func (h *interceptHandler) Handle(c *fiber.Ctx) error {
	var req interceptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	tx := transaction.New(req.UserID, c.Get("X-Api-Key"), req.Prompt)
	outcome := h.orchestrator.Process(c.Context(), tx, c.Get("Authorization"))

	if outcome.Delivered {
		content := string(outcome.Content)
		if outcome.ContentType == "image" {
			content = base64.StdEncoding.EncodeToString(outcome.Content)
		}
		return c.Status(fiber.StatusOK).JSON(deliveredResponse{
			Content:        content,
			ContentType:    outcome.ContentType,
			InterventionID: outcome.InterventionID.String(),
		})
	}

	status := fiber.StatusForbidden
	if outcome.Category == validation.CategoryServiceUnavailable {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(blockedResponse{
		Category:       string(outcome.Category),
		Message:        outcome.Message,
		Score:          outcome.Score,
		Threshold:      outcome.Threshold,
		InterventionID: outcome.InterventionID.String(),
	})
}
