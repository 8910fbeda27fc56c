package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/styles"
)

type appendStyleSamplesHandler struct {
	logger  *logrus.Logger
	service *styles.Service
}

func NewAppendStyleSamplesHandler(logger *logrus.Logger, service *styles.Service) Handler {
	return &appendStyleSamplesHandler{
		logger:  logger,
		service: service,
	}
}

func (h *appendStyleSamplesHandler) Handle(c *fiber.Ctx) error {
	styleID, err := uuid.Parse(c.Params("style_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid style_id"})
	}

	var req styleSamples
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Hashes) == 0 && len(req.Embeddings) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one hash or embedding is required"})
	}

	hashes, err := req.parseHashes()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity, err := h.service.AppendSamples(c.Context(), styleID, hashes, req.Embeddings)
	if err != nil {
		h.logger.WithError(err).WithField("style_id", styleID).Error("failed to append style samples")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "style not found"})
	}

	return c.Status(fiber.StatusOK).JSON(newStyleResponse(entity))
}
