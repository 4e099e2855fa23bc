package services

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"os"
	"strings"
)

// PayU payment endpoints, selected by environment
const (
	payuProductionURL = "https://secure.payu.in/_payment"
	payuSandboxURL    = "https://test.payu.in/_payment"
)

// PayUStatusSuccess is the status sentinel PayU reports for a completed payment
const PayUStatusSuccess = "success"

// ErrPayUNotConfigured is returned when the merchant key or salt is absent.
// Hashing must never proceed with an empty secret.
var ErrPayUNotConfigured = errors.New("payu merchant key or salt not configured")

// PayUService computes and verifies the SHA-512 hashes that authenticate
// the exchange with the PayU gateway. The merchant salt is never included
// in errors, logs or responses.
type PayUService struct {
	key        string
	salt       string
	paymentURL string
}

// NewPayUService creates a PayU service for the given merchant credentials
func NewPayUService(key, salt string, production bool) (*PayUService, error) {
	if key == "" || salt == "" {
		return nil, ErrPayUNotConfigured
	}

	url := payuSandboxURL
	if production {
		url = payuProductionURL
	}

	return &PayUService{key: key, salt: salt, paymentURL: url}, nil
}

// NewPayUServiceFromEnv reads PAYU_KEY, PAYU_SALT and PAYU_ENV
func NewPayUServiceFromEnv() (*PayUService, error) {
	return NewPayUService(
		os.Getenv("PAYU_KEY"),
		os.Getenv("PAYU_SALT"),
		os.Getenv("PAYU_ENV") == "production",
	)
}

// Key returns the public merchant key (sent to the gateway in plaintext)
func (s *PayUService) Key() string {
	return s.key
}

// PaymentURL returns the gateway endpoint the redirect form must POST to
func (s *PayUService) PaymentURL() string {
	return s.paymentURL
}

// HashFields carries the plaintext order values covered by the signature.
// Amount is the exact formatted decimal string; the unused UDF slots stay
// empty strings because field position, not presence, is what is signed.
type HashFields struct {
	TxnID       string
	Amount      string
	ProductInfo string
	Firstname   string
	Email       string
	UDF1        string
	UDF2        string
	UDF3        string
	UDF4        string
	UDF5        string
}

// buildRequestHashPayload assembles the outbound (merchant -> gateway)
// pipe-delimited string:
//
//	key|txnid|amount|productinfo|firstname|email|udf1|udf2|udf3|udf4|udf5||||||salt
func buildRequestHashPayload(key string, f HashFields, salt string) string {
	return strings.Join([]string{
		key,
		f.TxnID,
		f.Amount,
		f.ProductInfo,
		f.Firstname,
		f.Email,
		f.UDF1, f.UDF2, f.UDF3, f.UDF4, f.UDF5,
		"", "", "", "", "",
		salt,
	}, "|")
}

// buildCallbackHashPayload assembles the inbound (gateway -> merchant)
// pipe-delimited string, the mandated mirror image of the request payload
// with the reported status inserted after the salt:
//
//	salt|status||||||udf5|udf4|udf3|udf2|udf1|email|firstname|productinfo|amount|txnid|key
func buildCallbackHashPayload(salt, status string, f HashFields, key string) string {
	return strings.Join([]string{
		salt,
		status,
		"", "", "", "", "",
		f.UDF5, f.UDF4, f.UDF3, f.UDF2, f.UDF1,
		f.Email,
		f.Firstname,
		f.ProductInfo,
		f.Amount,
		f.TxnID,
		key,
	}, "|")
}

func sha512Hex(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// RequestHash computes the signature sent with the payment redirect form
func (s *PayUService) RequestHash(f HashFields) string {
	return sha512Hex(buildRequestHashPayload(s.key, f, s.salt))
}

// CallbackHash computes the signature expected on a gateway callback.
// The key is taken from the callback body, as the gateway signed it.
func (s *PayUService) CallbackHash(status string, f HashFields, key string) string {
	return sha512Hex(buildCallbackHashPayload(s.salt, status, f, key))
}

// VerifyCallbackHash recomputes the callback signature and compares it to
// the claimed one. The comparison is exact: lowercase hex, case-sensitive.
func (s *PayUService) VerifyCallbackHash(status string, f HashFields, key, claimed string) bool {
	expected := s.CallbackHash(status, f, key)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimed)) == 1
}
