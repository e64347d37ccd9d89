package middleware

// identity.go holds helpers shared across middleware files.  It pulls
// a user identifier out of the context for use in cache and rate-limit
// key construction; "guest" is returned for unauthenticated requests.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the request context.  JWTAuth
// stores the raw "sub" claim, which may arrive as a string or a JSON
// number depending on the issuer.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "guest"
}
