// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/evlane/wedding-planner/internal/handler"
)

// RegisterRoutes registers routes that need no handler state. /healthz is
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterSeating registers the table allocation endpoints under /v1. The
// optional cache middleware applies to the seating list read only; mutating
// routes are never cached.
func RegisterSeating(e *echo.Echo, h *handler.SeatingHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.POST("/weddings/:wedding_id/tables/couple", h.CreateCoupleTable)
	g.POST("/weddings/:wedding_id/tables", h.CreateGuestTable)
	g.POST("/weddings/:wedding_id/tables/:table_id/guests", h.AssignGuests)
	g.DELETE("/tables/:table_id", h.DeleteTable)
	g.PATCH("/tables/:table_id/capacity", h.UpdateTableCapacity)
	if cache != nil {
		g.GET("/weddings/:wedding_id/seating", h.ListSeating, cache)
	} else {
		g.GET("/weddings/:wedding_id/seating", h.ListSeating)
	}
}

// RegisterCosts registers the explicit cost recomputation endpoint.
func RegisterCosts(e *echo.Echo, h *handler.CostHandler) {
	e.POST("/v1/weddings/:wedding_id/costs/recompute", h.Recompute)
}
