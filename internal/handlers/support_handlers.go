package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clout_store_echo/internal/models"
)

// SupportHandler exposes the support ticket API
type SupportHandler struct {
	db *gorm.DB
}

// NewSupportHandler creates a new SupportHandler
func NewSupportHandler(db *gorm.DB) *SupportHandler {
	return &SupportHandler{db: db}
}

// CreateRequest files a support ticket.
// POST /api/support
func (h *SupportHandler) CreateRequest(c echo.Context) error {
	var req models.SupportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid support request")
	}
	if req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and message are required")
	}

	req.ID = fmt.Sprintf("SUP-%d", time.Now().UnixMilli())
	req.Status = models.SupportRequestStatusPending

	if err := h.db.Create(&req).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit support request")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"request": req,
	})
}

// ListRequests returns all support tickets for the back office.
// GET /api/support
func (h *SupportHandler) ListRequests(c echo.Context) error {
	var requests []models.SupportRequest
	if err := h.db.Order("created_at desc").Find(&requests).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch support requests")
	}
	return c.JSON(http.StatusOK, requests)
}

// DeleteRequest removes a support ticket by id.
// DELETE /api/support?id=...
func (h *SupportHandler) DeleteRequest(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ID required")
	}

	if err := h.db.Where("id = ?", id).Delete(&models.SupportRequest{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete request")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
