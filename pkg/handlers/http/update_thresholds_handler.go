package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/thresholds"
)

type updateThresholdsRequest struct {
	Values map[string]float64 `json:"values"`
}

type updateThresholdsHandler struct {
	logger  *logrus.Logger
	service *thresholds.Service
}

func NewUpdateThresholdsHandler(logger *logrus.Logger, service *thresholds.Service) Handler {
	return &updateThresholdsHandler{
		logger:  logger,
		service: service,
	}
}

func (h *updateThresholdsHandler) Handle(c *fiber.Ctx) error {
	var req updateThresholdsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Values) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "values are required"})
	}

	next, err := h.service.Update(c.Context(), req.Values)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(thresholdsResponse{
		Version: next.Version,
		Values:  next.Values,
	})
}
