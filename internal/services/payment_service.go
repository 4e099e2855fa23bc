package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"clout_store_echo/internal/models"
)

var (
	// ErrHashMismatch means the recomputed callback signature disagrees
	// with the claimed one; the reported status must not be trusted.
	ErrHashMismatch = errors.New("callback hash mismatch")
	// ErrMalformedCallback means required fields were absent from the
	// gateway's POST body.
	ErrMalformedCallback = errors.New("malformed gateway callback")
	// ErrOrderNotPayable means the order is not in a payable state
	ErrOrderNotPayable = errors.New("order is not awaiting payment")
)

// PayUNotification is the form body PayU posts to the success callback
type PayUNotification struct {
	Status      string `form:"status" json:"status"`
	TxnID       string `form:"txnid" json:"txnid"`
	Amount      string `form:"amount" json:"amount"`
	ProductInfo string `form:"productinfo" json:"productinfo"`
	Firstname   string `form:"firstname" json:"firstname"`
	Email       string `form:"email" json:"email"`
	Hash        string `form:"hash" json:"hash"`
	Key         string `form:"key" json:"key"`
	UDF1        string `form:"udf1" json:"udf1"`
	UDF2        string `form:"udf2" json:"udf2"`
	UDF3        string `form:"udf3" json:"udf3"`
	UDF4        string `form:"udf4" json:"udf4"`
	UDF5        string `form:"udf5" json:"udf5"`
}

func (n *PayUNotification) hashFields() HashFields {
	return HashFields{
		TxnID:       n.TxnID,
		Amount:      n.Amount,
		ProductInfo: n.ProductInfo,
		Firstname:   n.Firstname,
		Email:       n.Email,
		UDF1:        n.UDF1,
		UDF2:        n.UDF2,
		UDF3:        n.UDF3,
		UDF4:        n.UDF4,
		UDF5:        n.UDF5,
	}
}

// PaymentRequest holds everything the checkout page needs to build the
// auto-submitting redirect form for the gateway.
type PaymentRequest struct {
	PaymentURL      string `json:"actionUrl"`
	Key             string `json:"key"`
	TxnID           string `json:"txnid"`
	Amount          string `json:"amount"`
	ProductInfo     string `json:"productinfo"`
	Firstname       string `json:"firstname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SuccessURL      string `json:"surl"`
	FailureURL      string `json:"furl"`
	Hash            string `json:"hash"`
	PG              string `json:"pg"`
	BankCode        string `json:"bankcode"`
	UDF1            string `json:"udf1"`
	UDF2            string `json:"udf2"`
	UDF3            string `json:"udf3"`
	UDF4            string `json:"udf4"`
	UDF5            string `json:"udf5"`
	ServiceProvider string `json:"service_provider"`
}

// PaymentService reconciles order state with the PayU gateway exchange
type PaymentService struct {
	orders OrderStore
	payu   *PayUService
	db     *gorm.DB // callback audit log; may be nil in tests
}

// NewPaymentService creates the payment reconciliation service
func NewPaymentService(orders OrderStore, payu *PayUService, db *gorm.DB) *PaymentService {
	return &PaymentService{orders: orders, payu: payu, db: db}
}

// BuildPaymentRequest prepares the signed redirect form for an order that
// is awaiting payment. It never mutates the order.
func (s *PaymentService) BuildPaymentRequest(ctx context.Context, txnid, baseURL string) (*PaymentRequest, error) {
	order, err := s.orders.GetByTxnID(ctx, txnid)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPayable
	}

	fields := HashFields{
		TxnID:       order.TxnID,
		Amount:      order.Amount,
		ProductInfo: order.ProductInfo,
		Firstname:   order.Firstname,
		Email:       order.Email,
		UDF1:        order.UDF1,
		UDF2:        order.UDF2,
		UDF3:        order.UDF3,
		UDF4:        order.UDF4,
		UDF5:        order.UDF5,
	}

	return &PaymentRequest{
		PaymentURL:      s.payu.PaymentURL(),
		Key:             s.payu.Key(),
		TxnID:           order.TxnID,
		Amount:          order.Amount,
		ProductInfo:     order.ProductInfo,
		Firstname:       order.Firstname,
		Email:           order.Email,
		Phone:           order.Phone,
		SuccessURL:      baseURL + "/api/payu/success",
		FailureURL:      baseURL + "/api/payu/failure",
		Hash:            s.payu.RequestHash(fields),
		UDF1:            order.UDF1,
		UDF2:            order.UDF2,
		UDF3:            order.UDF3,
		UDF4:            order.UDF4,
		UDF5:            order.UDF5,
		ServiceProvider: "payu_paisa",
	}, nil
}

// ConfirmPayment authenticates a success-path callback and moves the
// order to its terminal status. Replaying the same callback is a no-op;
// a terminal status is never overwritten.
func (s *PaymentService) ConfirmPayment(ctx context.Context, n *PayUNotification) (models.OrderStatus, error) {
	s.recordCallback(n.TxnID, models.PaymentCallbackKindSuccess, n)

	if n.TxnID == "" || n.Status == "" || n.Hash == "" {
		return "", ErrMalformedCallback
	}

	order, err := s.orders.GetByTxnID(ctx, n.TxnID)
	if err != nil {
		return "", err
	}

	if !s.payu.VerifyCallbackHash(n.Status, n.hashFields(), n.Key, n.Hash) {
		// Potential forgery. The claimed status is untrusted, so the
		// order is parked for manual review instead of being paid or
		// left pending forever.
		if order.Status == models.OrderStatusPending {
			if err := s.orders.UpdateStatus(ctx, n.TxnID, models.OrderStatusUnverified); err != nil {
				log.Printf("Failed to mark order %s unverified: %v", n.TxnID, err)
			}
		}
		return models.OrderStatusUnverified, ErrHashMismatch
	}

	status := models.OrderStatusFailed
	if n.Status == PayUStatusSuccess {
		status = models.OrderStatusPaid
	}

	if order.Status.Terminal() {
		if order.Status != status {
			log.Printf("Order %s already %s, ignoring callback reporting %s", n.TxnID, order.Status, status)
		}
		return order.Status, nil
	}

	if err := s.orders.UpdateStatus(ctx, n.TxnID, status); err != nil {
		return "", err
	}
	return status, nil
}

// CancelPayment handles the failure/cancellation callback. No payment is
// claimed on this path, so no signature check applies; the order is
// simply marked FAILED unless it already reached a terminal status.
func (s *PaymentService) CancelPayment(ctx context.Context, txnid string) (models.OrderStatus, error) {
	s.recordCallback(txnid, models.PaymentCallbackKindFailure, map[string]string{"txnid": txnid})

	if txnid == "" {
		return "", ErrMalformedCallback
	}

	order, err := s.orders.GetByTxnID(ctx, txnid)
	if err != nil {
		return "", err
	}
	if order.Status.Terminal() {
		return order.Status, nil
	}

	if err := s.orders.UpdateStatus(ctx, txnid, models.OrderStatusFailed); err != nil {
		return "", err
	}
	return models.OrderStatusFailed, nil
}

func (s *PaymentService) recordCallback(txnid string, kind models.PaymentCallbackKind, payload interface{}) {
	if s.db == nil {
		return
	}

	metadata, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal callback payload: %v", err)
		return
	}

	callback := models.PaymentCallback{
		PaymentGateway: models.PaymentGatewayPayU,
		TxnID:          txnid,
		Kind:           kind,
		Metadata:       metadata,
	}
	if err := s.db.Create(&callback).Error; err != nil {
		log.Printf("Failed to record payment callback: %v", err)
	}
}
