package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clout_store_echo/internal/models"
)

// UserHandler exposes the customer account API
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUsers returns all customers, or one looked up by email.
// GET /api/users?email=...
func (h *UserHandler) GetUsers(c echo.Context) error {
	if email := c.QueryParam("email"); email != "" {
		var user models.User
		err := h.db.Where("email = ?", email).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusOK, nil)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
		}
		return c.JSON(http.StatusOK, user)
	}

	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

type userActionRequest struct {
	Action       string          `json:"action"`
	Email        string          `json:"email"`
	ShippingInfo json.RawMessage `json:"shippingInfo"`
}

// UpdateUser applies an account action: elite membership toggle or
// shipping info save.
// POST /api/users
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req userActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email required")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	switch req.Action {
	case "toggleElite":
		user.IsElite = !user.IsElite
		if user.IsElite {
			user.Level = models.MembershipElite
		} else {
			user.Level = models.MembershipBasic
		}
	case "saveShipping":
		user.ShippingInfo = req.ShippingInfo
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid action")
	}

	if err := h.db.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process request")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
