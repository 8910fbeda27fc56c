package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/ArtSentry/StyleGate/pkg/handlers/http"
)

type proxyRouter struct {
	transport *handlers.HandlerTransport
}

func NewProxyRouter(transport *handlers.HandlerTransport) ServerRouter {
	return &proxyRouter{transport: transport}
}

func (r *proxyRouter) BuildRoutes(app *fiber.App) error {
	app.Post("/v1/interceptions", r.transport.InterceptHandler.Handle)
	return nil
}
