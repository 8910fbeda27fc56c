package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/styles"
)

type suspendStyleHandler struct {
	logger  *logrus.Logger
	service *styles.Service
}

func NewSuspendStyleHandler(logger *logrus.Logger, service *styles.Service) Handler {
	return &suspendStyleHandler{
		logger:  logger,
		service: service,
	}
}

func (h *suspendStyleHandler) Handle(c *fiber.Ctx) error {
	styleID, err := uuid.Parse(c.Params("style_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid style_id"})
	}

	entity, err := h.service.Suspend(c.Context(), styleID)
	if err != nil {
		h.logger.WithError(err).WithField("style_id", styleID).Error("failed to suspend style")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "style not found"})
	}

	return c.Status(fiber.StatusOK).JSON(newStyleResponse(entity))
}
