package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints: the
// field catalogue and the per-day availability schedule.  Guests use
// these to pick a field and a free slot before registering.  The
// optional middleware (typically the Redis response cache) applies to
// every public route.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, s *handler.ScheduleHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/fields", p.GetPublicFields)
	g.GET("/fields/:id", p.GetPublicField)
	// The schedule view is advisory; the commit re-checks conflicts.
	g.GET("/schedule", s.GetSchedule)
}
