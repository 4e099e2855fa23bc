package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeMiddleware "clout_store_echo/internal/middleware"
)

func adminLogin(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminLogin(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	h := NewAdminHandler()
	e := echo.New()

	c, rec := adminLogin(e, `{"username":"admin@example.com","password":"s3cret"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, storeMiddleware.AdminSessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminLoginInvalidCredentials(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	h := NewAdminHandler()
	e := echo.New()

	c, rec := adminLogin(e, `{"username":"admin@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAdminLoginUnconfigured(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")

	h := NewAdminHandler()
	e := echo.New()

	c, rec := adminLogin(e, `{"username":"x","password":"y"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	guarded := storeMiddleware.RequireAdmin()(next)

	// No cookie
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	err := guarded(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	// With session cookie
	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: storeMiddleware.AdminSessionCookie, Value: "true"})
	rec = httptest.NewRecorder()
	require.NoError(t, guarded(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
