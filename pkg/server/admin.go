package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/config"
	"github.com/ArtSentry/StyleGate/pkg/server/router"
)

type (
	AdminServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	AdminServer struct {
		*BaseServer
	}
)

// NewAdminServer hosts the registry, threshold and audit-query
// endpoints.
func NewAdminServer(di AdminServerDI) *AdminServer {
	s := &AdminServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
	s.setupHealthCheck()
	return s
}

func (s *AdminServer) Run() error {
	addr := fmt.Sprintf(":%d", s.Config.Server.AdminPort)
	s.Logger.WithField("addr", addr).Info("starting admin server")
	return s.Router.Listen(addr)
}

func (s *AdminServer) Shutdown() error {
	return s.Router.Shutdown()
}
