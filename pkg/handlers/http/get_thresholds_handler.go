package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/thresholds"
)

type thresholdsResponse struct {
	Version int64              `json:"version"`
	Values  map[string]float64 `json:"values"`
}

type getThresholdsHandler struct {
	logger  *logrus.Logger
	service *thresholds.Service
}

func NewGetThresholdsHandler(logger *logrus.Logger, service *thresholds.Service) Handler {
	return &getThresholdsHandler{
		logger:  logger,
		service: service,
	}
}

func (h *getThresholdsHandler) Handle(c *fiber.Ctx) error {
	current := h.service.Current()
	return c.Status(fiber.StatusOK).JSON(thresholdsResponse{
		Version: current.Version,
		Values:  current.Values,
	})
}
