//
//  Copyright © Altinn. All rights reserved.
//

// Package rest exposes the engine as an HTTP/REST service.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core"
	"github.com/altinn/accessmgmt/pkg/endpoint"
)

// Server serves the engine's REST API.
type Server struct {
	echo *echo.Echo
}

// CreateServer creates and starts a new REST endpoint server listening
// on the given port.
func CreateServer(engine core.Engine, port int) (endpoint.Server, error) {
	e := echo.New()
	e.HideBanner = true

	registerRoutes(e, &handlers{engine: engine})

	// Start server in goroutine since e.Start() blocks
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	return &Server{
		echo: e,
	}, nil
}

// Stop gracefully stops the Server by shutting down the Echo HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func registerRoutes(e *echo.Echo, h *handlers) {
	v1 := e.Group("/api/v1")
	v1.POST("/resolve", h.resolve)
	v1.POST("/delegations/check", h.check)
	v1.POST("/delegations", h.delegate)
	v1.POST("/delegations/revoke", h.revoke)
	v1.GET("/delegations/offered/:partyID", h.offered)
	v1.GET("/delegations/received/:partyID", h.received)
}

// httpStatus maps the engine error taxonomy onto HTTP status codes so
// callers can tell malformed requests, missing delegations, and backend
// outages apart.
func httpStatus(err error) int {
	switch common.KindOf(err) {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindConflict:
		return http.StatusConflict
	case common.KindCancelled:
		// 499: client closed request
		return 499
	case common.KindInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
