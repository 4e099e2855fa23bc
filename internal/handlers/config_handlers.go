package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clout_store_echo/internal/models"
	"clout_store_echo/internal/services"
)

const siteConfigCacheKey = "site_config"

// SiteConfigHandler serves the site-wide content document
type SiteConfigHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

// NewSiteConfigHandler creates a new SiteConfigHandler
func NewSiteConfigHandler(db *gorm.DB, cache *services.RedisCache) *SiteConfigHandler {
	return &SiteConfigHandler{db: db, cache: cache}
}

// GetConfig returns the config document.
// GET /api/config
func (h *SiteConfigHandler) GetConfig(c echo.Context) error {
	fetch := func() (json.RawMessage, error) {
		var config models.SiteConfig
		if err := h.db.First(&config, models.SiteConfigID).Error; err != nil {
			return nil, err
		}
		return config.Data, nil
	}

	var data json.RawMessage
	var err error
	if h.cache != nil {
		data, err = services.GetOrSet(h.cache, c.Request().Context(), siteConfigCacheKey, 10*time.Minute, fetch)
	} else {
		data, err = fetch()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read config")
	}

	return c.JSONBlob(http.StatusOK, data)
}

// UpdateConfig replaces the config document.
// POST /api/config
func (h *SiteConfigHandler) UpdateConfig(c echo.Context) error {
	var data json.RawMessage
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid config payload")
	}

	config := models.SiteConfig{ID: models.SiteConfigID, Data: data}
	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&config).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save config")
	}

	if h.cache != nil {
		_ = h.cache.Delete(c.Request().Context(), siteConfigCacheKey)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
