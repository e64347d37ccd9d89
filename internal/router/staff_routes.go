package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/handler"
	"github.com/iliyamo/field-reservation/internal/middleware"
)

// RegisterStaff registers the verification desk under /v1/staff.
// Admins also carry staff permissions so small facilities can run with
// a single back-office account.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF", "ADMIN"),
	)
	g.GET("/bookings", h.ListBookings)
	g.GET("/payments", h.ListPayments)
	g.PUT("/payments/:id", h.DecidePayment)
}
