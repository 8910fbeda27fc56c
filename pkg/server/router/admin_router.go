package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/ArtSentry/StyleGate/pkg/handlers/http"
)

type adminRouter struct {
	transport *handlers.HandlerTransport
}

func NewAdminRouter(transport *handlers.HandlerTransport) ServerRouter {
	return &adminRouter{transport: transport}
}

func (r *adminRouter) BuildRoutes(app *fiber.App) error {
	v1 := app.Group("/api/v1")

	v1.Post("/styles", r.transport.RegisterStyleHandler.Handle)
	v1.Get("/styles/:style_id", r.transport.GetStyleHandler.Handle)
	v1.Post("/styles/:style_id/samples", r.transport.AppendStyleSamplesHandler.Handle)
	v1.Post("/styles/:style_id/suspend", r.transport.SuspendStyleHandler.Handle)

	v1.Get("/thresholds", r.transport.GetThresholdsHandler.Handle)
	v1.Put("/thresholds", r.transport.UpdateThresholdsHandler.Handle)

	v1.Get("/audit/:intervention_id", r.transport.GetAuditRecordHandler.Handle)
	v1.Get("/audit", r.transport.ListAuditRecordsHandler.Handle)

	return nil
}
