package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"clout_store_echo/internal/models"
	"clout_store_echo/internal/services"
)

// PayUHandler exposes the gateway protocol endpoints: the hash request
// builder and the two callback entry points.
type PayUHandler struct {
	payu     *services.PayUService
	payments *services.PaymentService
}

// NewPayUHandler creates a new PayUHandler. payu may be nil when the
// merchant credentials are not configured; the endpoints then answer 500.
func NewPayUHandler(payu *services.PayUService, payments *services.PaymentService) *PayUHandler {
	return &PayUHandler{payu: payu, payments: payments}
}

type hashRequest struct {
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	Firstname   string `json:"firstname"`
	Email       string `json:"email"`
	UDF1        string `json:"udf1"`
	UDF2        string `json:"udf2"`
	UDF3        string `json:"udf3"`
	UDF4        string `json:"udf4"`
	UDF5        string `json:"udf5"`
}

type hashResponse struct {
	Hash        string `json:"hash"`
	Key         string `json:"key"`
	ActionURL   string `json:"actionUrl"`
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	Firstname   string `json:"firstname"`
	Email       string `json:"email"`
	UDF1        string `json:"udf1"`
	UDF2        string `json:"udf2"`
	UDF3        string `json:"udf3"`
	UDF4        string `json:"udf4"`
	UDF5        string `json:"udf5"`
}

// GenerateHash signs the outbound payment request for the checkout page.
// POST /api/payu/hash
func (h *PayUHandler) GenerateHash(c echo.Context) error {
	if h.payu == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Payment gateway not configured on server",
		})
	}

	var req hashRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.TxnID == "" || req.Amount == "" || req.ProductInfo == "" || req.Firstname == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required payment fields")
	}

	hash := h.payu.RequestHash(services.HashFields{
		TxnID:       req.TxnID,
		Amount:      req.Amount,
		ProductInfo: req.ProductInfo,
		Firstname:   req.Firstname,
		Email:       req.Email,
		UDF1:        req.UDF1,
		UDF2:        req.UDF2,
		UDF3:        req.UDF3,
		UDF4:        req.UDF4,
		UDF5:        req.UDF5,
	})

	return c.JSON(http.StatusOK, hashResponse{
		Hash:        hash,
		Key:         h.payu.Key(),
		ActionURL:   h.payu.PaymentURL(),
		TxnID:       req.TxnID,
		Amount:      req.Amount,
		ProductInfo: req.ProductInfo,
		Firstname:   req.Firstname,
		Email:       req.Email,
		UDF1:        req.UDF1,
		UDF2:        req.UDF2,
		UDF3:        req.UDF3,
		UDF4:        req.UDF4,
		UDF5:        req.UDF5,
	})
}

// SuccessCallback handles the gateway's success-path POST. Whatever goes
// wrong, the gateway caller always gets a 303 back to checkout; errors
// surface only as query parameters.
// POST /api/payu/success
func (h *PayUHandler) SuccessCallback(c echo.Context) error {
	if h.payu == nil {
		return redirectCheckoutError(c, "callback_error")
	}

	var n services.PayUNotification
	if err := c.Bind(&n); err != nil {
		log.Printf("PayU success callback bind error: %v", err)
		return redirectCheckoutError(c, "callback_error")
	}

	status, err := h.payments.ConfirmPayment(c.Request().Context(), &n)
	switch {
	case errors.Is(err, services.ErrHashMismatch):
		log.Printf("PayU hash mismatch for txnid %s", n.TxnID)
		return redirectCheckoutError(c, "hash_mismatch")
	case errors.Is(err, services.ErrOrderNotFound):
		log.Printf("PayU callback for unknown txnid %s", n.TxnID)
		return redirectCheckoutError(c, "callback_error")
	case err != nil:
		log.Printf("PayU success callback error: %v", err)
		return redirectCheckoutError(c, "callback_error")
	case status == models.OrderStatusPaid:
		return c.Redirect(http.StatusSeeOther, "/checkout?step=3&txnid="+url.QueryEscape(n.TxnID))
	default:
		return redirectCheckoutError(c, "payment_failed")
	}
}

// FailureCallback handles the gateway's cancellation/failure POST. No
// payment is claimed here, so only the txnid is used.
// POST /api/payu/failure
func (h *PayUHandler) FailureCallback(c echo.Context) error {
	txnid := c.FormValue("txnid")
	if txnid == "" {
		return redirectCheckoutError(c, "payment_cancelled")
	}

	if _, err := h.payments.CancelPayment(c.Request().Context(), txnid); err != nil {
		if !errors.Is(err, services.ErrOrderNotFound) {
			log.Printf("PayU failure callback error for txnid %s: %v", txnid, err)
			return redirectCheckoutError(c, "callback_error")
		}
		log.Printf("PayU failure callback for unknown txnid %s", txnid)
	}
	return redirectCheckoutError(c, "payment_cancelled")
}

func redirectCheckoutError(c echo.Context, code string) error {
	return c.Redirect(http.StatusSeeOther, "/checkout?error="+code)
}
