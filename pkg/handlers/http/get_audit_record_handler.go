package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/domain/audit"
)

type getAuditRecordHandler struct {
	logger *logrus.Logger
	repo   audit.Repository
}

func NewGetAuditRecordHandler(logger *logrus.Logger, repo audit.Repository) Handler {
	return &getAuditRecordHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *getAuditRecordHandler) Handle(c *fiber.Ctx) error {
	interventionID, err := uuid.Parse(c.Params("intervention_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid intervention_id"})
	}

	record, err := h.repo.Get(c.Context(), interventionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "audit record not found"})
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
