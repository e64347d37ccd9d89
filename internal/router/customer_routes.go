package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/handler"
	"github.com/iliyamo/field-reservation/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers create
// bookings, view and edit their own, cancel them and attach payment
// proofs.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PUT("/bookings/:id", h.UpdateBooking)
	g.PATCH("/bookings/:id", h.UpdateBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
	g.PUT("/payments/:id/proof", h.UploadPaymentProof)
}
