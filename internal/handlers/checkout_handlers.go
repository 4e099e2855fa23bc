package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"clout_store_echo/internal/services"
)

// CheckoutHandler renders the auto-submitting gateway redirect form
type CheckoutHandler struct {
	payments *services.PaymentService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(payments *services.PaymentService) *CheckoutHandler {
	return &CheckoutHandler{payments: payments}
}

// PayOrder renders a page whose hidden form POSTs the signed payment
// request straight to the gateway.
// GET /checkout/pay/:txnid
func (h *CheckoutHandler) PayOrder(c echo.Context) error {
	txnid := c.Param("txnid")

	req, err := h.payments.BuildPaymentRequest(c.Request().Context(), txnid, baseURL(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrOrderNotPayable):
			return echo.NewHTTPError(http.StatusBadRequest, "Order is not awaiting payment")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to prepare payment")
		}
	}

	// Optional payment-method preselection passed through to the gateway
	req.PG = c.QueryParam("pg")
	req.BankCode = c.QueryParam("bankcode")

	return c.Render(http.StatusOK, "payment_redirect.html", req)
}

// baseURL resolves the public origin used for the gateway callback URLs.
// PUBLIC_BASE_URL wins when set (the server usually sits behind a proxy).
func baseURL(c echo.Context) string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	scheme := c.Scheme()
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + c.Request().Host
}
