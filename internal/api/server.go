// Package api exposes the plan compiler over HTTP. One endpoint accepts a
// blueprint document and answers with the compiled installation script;
// the rest is status and metrics plumbing.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osbuild/archstrap/internal/common"
	"github.com/osbuild/archstrap/internal/prometheus"
)

// Server holds the request-independent compiler configuration.
type Server struct {
	zoneinfoDir string
}

// NewServer returns a server validating timezones against zoneinfoDir;
// empty selects the system default.
func NewServer(zoneinfoDir string) *Server {
	return &Server{
		zoneinfoDir: zoneinfoDir,
	}
}

// Handler builds the HTTP handler serving the v1 API and /metrics.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Logger = common.Logger()
	e.Pre(common.OperationIDMiddleware, common.ExternalIDMiddleware)
	e.Use(middleware.Recover())
	e.Use(common.LoggerMiddleware)

	v1 := e.Group("/api/v1", prometheus.MetricsMiddleware)
	v1.GET("/status", s.statusHandler)
	v1.POST("/compose", s.composeHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
