package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/app/styles"
)

type registerStyleRequest struct {
	Name          string `json:"name"`
	RightsHolder  string `json:"rights_holder"`
	Contact       string `json:"contact"`
	ClassifierRef string `json:"classifier_ref"`
	styleSamples
}

type registerStyleHandler struct {
	logger  *logrus.Logger
	service *styles.Service
}

func NewRegisterStyleHandler(logger *logrus.Logger, service *styles.Service) Handler {
	return &registerStyleHandler{
		logger:  logger,
		service: service,
	}
}

func (h *registerStyleHandler) Handle(c *fiber.Ctx) error {
	var req registerStyleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	hashes, err := req.parseHashes()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity, err := h.service.Register(c.Context(), styles.RegisterInput{
		Name:          req.Name,
		RightsHolder:  req.RightsHolder,
		Contact:       req.Contact,
		Hashes:        hashes,
		Embeddings:    req.Embeddings,
		ClassifierRef: req.ClassifierRef,
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to register protected style")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newStyleResponse(entity))
}
