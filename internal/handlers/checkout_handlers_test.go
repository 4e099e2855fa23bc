package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clout_store_echo/internal/models"
	"clout_store_echo/internal/services"
)

type stubRenderer struct{}

func (stubRenderer) Render(w io.Writer, name string, _ interface{}, _ echo.Context) error {
	_, err := w.Write([]byte(name))
	return err
}

func payOrderContext(e *echo.Echo, txnid string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/checkout/pay/"+txnid, nil)
	req.Host = "shop.example.com"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/checkout/pay/:txnid")
	c.SetParamNames("txnid")
	c.SetParamValues(txnid)
	return c, rec
}

func TestPayOrderRendersRedirectForm(t *testing.T) {
	payu, err := services.NewPayUService("testkey", "testsalt", false)
	require.NoError(t, err)
	store := newMemOrderStore()
	seedPendingOrder(t, store)
	h := NewCheckoutHandler(services.NewPaymentService(store, payu, nil))

	e := echo.New()
	e.Renderer = stubRenderer{}

	c, rec := payOrderContext(e, "CLOUT-12345")
	require.NoError(t, h.PayOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "payment_redirect.html", rec.Body.String())

	// Preparing the form must not touch the order
	assert.Equal(t, models.OrderStatusPending, store.status(t, "CLOUT-12345"))
}

func TestPayOrderUnknownOrder(t *testing.T) {
	payu, err := services.NewPayUService("testkey", "testsalt", false)
	require.NoError(t, err)
	h := NewCheckoutHandler(services.NewPaymentService(newMemOrderStore(), payu, nil))

	e := echo.New()
	c, _ := payOrderContext(e, "CLOUT-404")

	handlerErr := h.PayOrder(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, handlerErr, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestPayOrderAlreadyPaid(t *testing.T) {
	payu, err := services.NewPayUService("testkey", "testsalt", false)
	require.NoError(t, err)
	store := newMemOrderStore()
	require.NoError(t, store.Create(context.Background(), &models.Order{
		TxnID:  "CLOUT-12345",
		Amount: "499.00",
		Email:  "asha@example.com",
		Status: models.OrderStatusPaid,
	}))
	h := NewCheckoutHandler(services.NewPaymentService(store, payu, nil))

	e := echo.New()
	c, _ := payOrderContext(e, "CLOUT-12345")

	handlerErr := h.PayOrder(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, handlerErr, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
