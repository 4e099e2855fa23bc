package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"clout_store_echo/internal/models"
	"clout_store_echo/internal/services"
)

// OrderHandler exposes the order CRUD API
type OrderHandler struct {
	orders services.OrderStore
	txnID  func() string
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders services.OrderStore) *OrderHandler {
	return &OrderHandler{orders: orders, txnID: newTxnID}
}

type createOrderRequest struct {
	Amount       string          `json:"amount"`
	ProductInfo  string          `json:"productinfo"`
	Firstname    string          `json:"firstname"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	UDF1         string          `json:"udf1"`
	UDF2         string          `json:"udf2"`
	UDF3         string          `json:"udf3"`
	UDF4         string          `json:"udf4"`
	UDF5         string          `json:"udf5"`
	Items        json.RawMessage `json:"items"`
	ShippingInfo json.RawMessage `json:"shippingInfo"`
}

// newTxnID generates a merchant transaction id like "CLOUT-17560000000001234".
// The timestamp keeps ids across requests distinct; the random suffix
// separates requests landing on the same millisecond.
func newTxnID() string {
	return fmt.Sprintf("CLOUT-%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// CreateOrder places a new order in PENDING status, ahead of the
// gateway exchange.
// POST /api/orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order payload")
	}
	if req.Amount == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required order fields")
	}

	// Retry with a fresh txnid if the generated one collides with an
	// existing order
	var order models.Order
	for attempt := 0; attempt < 3; attempt++ {
		order = models.Order{
			TxnID:        h.txnID(),
			Amount:       req.Amount,
			ProductInfo:  req.ProductInfo,
			Firstname:    req.Firstname,
			Email:        req.Email,
			Phone:        req.Phone,
			UDF1:         req.UDF1,
			UDF2:         req.UDF2,
			UDF3:         req.UDF3,
			UDF4:         req.UDF4,
			UDF5:         req.UDF5,
			Status:       models.OrderStatusPending,
			Items:        req.Items,
			ShippingInfo: req.ShippingInfo,
		}

		err := h.orders.Create(c.Request().Context(), &order)
		if err == nil {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"success": true,
				"order":   order,
			})
		}
		if !errors.Is(err, services.ErrDuplicateTxnID) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to place order")
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "Failed to place order")
}

// ListOrders returns all orders, newest first.
// GET /api/orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

type updateOrderRequest struct {
	TxnID        string             `json:"txnid"`
	Status       models.OrderStatus `json:"status"`
	ShippingInfo json.RawMessage    `json:"shippingInfo"`
}

// UpdateOrder lets the back office adjust an order's status or shipping info.
// PUT /api/orders
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order payload")
	}
	if req.TxnID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No txnid provided")
	}

	order, err := h.orders.GetByTxnID(c.Request().Context(), req.TxnID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update order")
	}

	if req.Status != "" {
		order.Status = req.Status
	}
	if req.ShippingInfo != nil {
		order.ShippingInfo = req.ShippingInfo
	}

	if err := h.orders.Update(c.Request().Context(), order); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update order")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// DeleteOrder removes an order by txnid.
// DELETE /api/orders?txnid=...
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	txnid := c.QueryParam("txnid")
	if txnid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No txnid provided")
	}

	if err := h.orders.Delete(c.Request().Context(), txnid); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete order")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
