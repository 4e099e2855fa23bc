package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminSessionCookie is the back-office session cookie name
const AdminSessionCookie = "admin_session"

// RequireAdmin returns a middleware that guards back-office routes behind
// the admin session cookie set by the login handler.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AdminSessionCookie)
			if err != nil || cookie.Value != "true" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Admin login required")
			}
			return next(c)
		}
	}
}
