package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clout_store_echo/internal/models"
	"clout_store_echo/internal/services"
)

const productsCacheKey = "products:all"

// ProductHandler exposes the catalog CRUD API
type ProductHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(db *gorm.DB, cache *services.RedisCache) *ProductHandler {
	return &ProductHandler{db: db, cache: cache}
}

// ListProducts returns the catalog, optionally filtered by category.
// The full list is cached; the filter is applied after the read.
// GET /api/products?category=...
func (h *ProductHandler) ListProducts(c echo.Context) error {
	fetch := func() ([]models.Product, error) {
		var products []models.Product
		err := h.db.Find(&products).Error
		return products, err
	}

	var products []models.Product
	var err error
	if h.cache != nil {
		products, err = services.GetOrSet(h.cache, c.Request().Context(), productsCacheKey, 5*time.Minute, fetch)
	} else {
		products, err = fetch()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}

	if category := c.QueryParam("category"); category != "" {
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return c.JSON(http.StatusOK, products)
}

// CreateProduct adds a catalog item.
// POST /api/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product payload")
	}
	if product.ID == "" {
		product.ID = fmt.Sprintf("PROD-%d", time.Now().UnixMilli())
	}

	if err := h.db.Create(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add product")
	}
	h.invalidate(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// UpdateProduct updates a catalog item by id.
// PUT /api/products
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var updates models.Product
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product payload")
	}
	if updates.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No ID provided")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", updates.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	if err := h.db.Model(&product).Select("name", "category", "price", "stock", "images", "description", "is_trending", "is_limited").Updates(updates).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}
	if err := h.db.First(&product, "id = ?", updates.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}
	h.invalidate(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// DeleteProduct removes a catalog item by id.
// DELETE /api/products?id=...
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No ID provided")
	}

	res := h.db.Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	h.invalidate(c)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ProductHandler) invalidate(c echo.Context) {
	if h.cache != nil {
		_ = h.cache.Delete(c.Request().Context(), productsCacheKey)
	}
}
