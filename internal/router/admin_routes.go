package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/handler"
	"github.com/iliyamo/field-reservation/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin:
// field inventory management and administrative booking transitions.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Fields ----
	g.GET("/fields", h.ListFields)
	g.POST("/fields", h.CreateField)
	g.PUT("/fields/:id", h.UpdateField)
	g.PATCH("/fields/:id", h.UpdateField) // partial updates via PATCH as well
	g.DELETE("/fields/:id", h.DeleteField)

	// ---- Bookings ----
	g.PUT("/bookings/:id/status", h.UpdateBookingStatus)
}
