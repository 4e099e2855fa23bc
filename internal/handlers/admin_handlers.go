package handlers

import (
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"clout_store_echo/internal/middleware"
)

// AdminHandler handles the back-office login. Admin auth is a static
// credential check against the environment, nothing more.
type AdminHandler struct{}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the configured admin credentials and sets the session cookie.
// POST /api/admin/login
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid login payload")
	}

	user := os.Getenv("ADMIN_USERNAME")
	pass := os.Getenv("ADMIN_PASSWORD")
	if user == "" || pass == "" {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Admin credentials not configured",
		})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(pass)) == 1
	if !userOK || !passOK {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "Invalid credentials",
		})
	}

	expiresIn := 24 * time.Hour
	cookie := &http.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "true",
		MaxAge:   int(expiresIn.Seconds()),
		HttpOnly: true,
		Secure:   os.Getenv("ENV") == "production",
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// Logout clears the session cookie.
// POST /api/admin/logout
func (h *AdminHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
