package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clout_store_echo/internal/models"
)

func TestCreateOrder(t *testing.T) {
	store := newMemOrderStore()
	h := NewOrderHandler(store)
	e := echo.New()

	body := `{"amount":"499.00","productinfo":"Clothing Order","firstname":"Asha","email":"asha@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Order.TxnID, "CLOUT-"))
	assert.Equal(t, models.OrderStatusPending, resp.Order.Status)

	assert.Equal(t, models.OrderStatusPending, store.status(t, resp.Order.TxnID))
}

func TestCreateOrderRetriesDuplicateTxnID(t *testing.T) {
	store := newMemOrderStore()
	seedPendingOrder(t, store) // occupies CLOUT-12345
	h := NewOrderHandler(store)

	// First generated id collides with the seeded order
	ids := []string{"CLOUT-12345", "CLOUT-67890"}
	h.txnID = func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	e := echo.New()
	body := `{"amount":"499.00","email":"asha@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateOrder(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "CLOUT-67890", resp.Order.TxnID)

	// The seeded order is untouched
	assert.Equal(t, models.OrderStatusPending, store.status(t, "CLOUT-12345"))
}

func TestCreateOrderGivesUpAfterRepeatedCollisions(t *testing.T) {
	store := newMemOrderStore()
	seedPendingOrder(t, store)
	h := NewOrderHandler(store)
	h.txnID = func() string { return "CLOUT-12345" }

	e := echo.New()
	body := `{"amount":"499.00","email":"asha@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.CreateOrder(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestCreateOrderMissingFields(t *testing.T) {
	h := NewOrderHandler(newMemOrderStore())
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"productinfo":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateOrder(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	store := newMemOrderStore()
	seedPendingOrder(t, store)
	h := NewOrderHandler(store)
	e := echo.New()

	body := `{"txnid":"CLOUT-12345","status":"FAILED"}`
	req := httptest.NewRequest(http.MethodPut, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.UpdateOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderStatusFailed, store.status(t, "CLOUT-12345"))
}

func TestDeleteOrder(t *testing.T) {
	store := newMemOrderStore()
	seedPendingOrder(t, store)
	h := NewOrderHandler(store)
	e := echo.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/orders?txnid=CLOUT-12345", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.DeleteOrder(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/orders?txnid=CLOUT-12345", nil)
	rec = httptest.NewRecorder()
	err := h.DeleteOrder(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
