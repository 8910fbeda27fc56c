package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Proxy
	InterceptHandler Handler

	// Registry
	RegisterStyleHandler      Handler
	GetStyleHandler           Handler
	AppendStyleSamplesHandler Handler
	SuspendStyleHandler       Handler

	// Thresholds
	GetThresholdsHandler    Handler
	UpdateThresholdsHandler Handler

	// Audit
	GetAuditRecordHandler   Handler
	ListAuditRecordsHandler Handler
}
