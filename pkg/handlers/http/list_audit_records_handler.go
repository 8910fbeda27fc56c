package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/domain/audit"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
)

type auditPageResponse struct {
	Records []audit.Record `json:"records"`
	Next    string         `json:"next,omitempty"`
}

type listAuditRecordsHandler struct {
	logger *logrus.Logger
	repo   audit.Repository
}

func NewListAuditRecordsHandler(logger *logrus.Logger, repo audit.Repository) Handler {
	return &listAuditRecordsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *listAuditRecordsHandler) Handle(c *fiber.Ctx) error {
	query := audit.Query{
		UserID:   c.Query("user_id"),
		Category: validation.Category(c.Query("category")),
		Limit:    c.QueryInt("limit"),
		Token:    c.Query("token"),
	}

	if raw := c.Query("style_id"); raw != "" {
		styleID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid style_id"})
		}
		query.StyleID = &styleID
	}

	var err error
	if query.From, err = parseTime(c.Query("from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from timestamp"})
	}
	if query.To, err = parseTime(c.Query("to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to timestamp"})
	}

	page, err := h.repo.Find(c.Context(), query)
	if err != nil {
		h.logger.WithError(err).Error("audit query failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(auditPageResponse{
		Records: page.Records,
		Next:    page.Next,
	})
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
