package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/config"
	"github.com/ArtSentry/StyleGate/pkg/server/router"
)

type (
	ProxyServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	ProxyServer struct {
		*BaseServer
	}
)

// NewProxyServer hosts the interception endpoint the generative
// clients talk to. The metrics listener rides along on its own port.
func NewProxyServer(di ProxyServerDI) *ProxyServer {
	s := &ProxyServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	return s
}

func (s *ProxyServer) Run() error {
	addr := fmt.Sprintf(":%d", s.Config.Server.ProxyPort)
	s.Logger.WithField("addr", addr).Info("starting proxy server")
	return s.Router.Listen(addr)
}

func (s *ProxyServer) Shutdown() error {
	return s.Router.Shutdown()
}
