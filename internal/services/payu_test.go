package services

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey  = "testkey"
	testSalt = "testsalt"
)

func testFields() HashFields {
	return HashFields{
		TxnID:       "CLOUT-12345",
		Amount:      "499.00",
		ProductInfo: "Clothing Order",
		Firstname:   "Asha",
		Email:       "asha@example.com",
	}
}

func newTestPayU(t *testing.T) *PayUService {
	t.Helper()
	payu, err := NewPayUService(testKey, testSalt, false)
	require.NoError(t, err)
	return payu
}

func rawSHA512Hex(t *testing.T, payload string) string {
	t.Helper()
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func TestNewPayUService(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		salt    string
		wantErr bool
	}{
		{name: "valid credentials", key: "k", salt: "s"},
		{name: "missing key", key: "", salt: "s", wantErr: true},
		{name: "missing salt", key: "k", salt: "", wantErr: true},
		{name: "both missing", key: "", salt: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payu, err := NewPayUService(tt.key, tt.salt, false)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPayUNotConfigured)
				assert.Nil(t, payu)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.key, payu.Key())
			}
		})
	}
}

func TestPaymentURLSelection(t *testing.T) {
	sandbox, err := NewPayUService(testKey, testSalt, false)
	require.NoError(t, err)
	assert.Equal(t, "https://test.payu.in/_payment", sandbox.PaymentURL())

	production, err := NewPayUService(testKey, testSalt, true)
	require.NoError(t, err)
	assert.Equal(t, "https://secure.payu.in/_payment", production.PaymentURL())
}

func TestRequestHashMatchesWireFormat(t *testing.T) {
	payu := newTestPayU(t)

	// The exact pipe-delimited string the gateway hashes on its side:
	// key|txnid|amount|productinfo|firstname|email|udf1..udf5|<5 empty>|salt
	raw := "testkey|CLOUT-12345|499.00|Clothing Order|Asha|asha@example.com|||||||||||testsalt"
	want := rawSHA512Hex(t, raw)

	got := payu.RequestHash(testFields())
	assert.Equal(t, want, got)

	// Deterministic for fixed inputs
	assert.Equal(t, got, payu.RequestHash(testFields()))
}

func TestRequestHashWithUDFs(t *testing.T) {
	payu := newTestPayU(t)

	fields := testFields()
	fields.UDF1 = "cart-77"
	fields.UDF3 = "campaign-x"

	raw := "testkey|CLOUT-12345|499.00|Clothing Order|Asha|asha@example.com|cart-77||campaign-x||||||||testsalt"
	assert.Equal(t, rawSHA512Hex(t, raw), payu.RequestHash(fields))
}

func TestRequestHashFieldOrderIsLoadBearing(t *testing.T) {
	payu := newTestPayU(t)
	base := payu.RequestHash(testFields())

	// Swapping any two fields must change the digest
	swapped := testFields()
	swapped.Amount, swapped.ProductInfo = swapped.ProductInfo, swapped.Amount
	assert.NotEqual(t, base, payu.RequestHash(swapped))

	swapped = testFields()
	swapped.Firstname, swapped.Email = swapped.Email, swapped.Firstname
	assert.NotEqual(t, base, payu.RequestHash(swapped))
}

func TestVerifyCallbackHashAcceptsGatewayReply(t *testing.T) {
	payu := newTestPayU(t)

	// Simulate the gateway computing the reply hash independently, using
	// the reverse-ordered string its protocol prescribes:
	// salt|status|<5 empty>|udf5..udf1|email|firstname|productinfo|amount|txnid|key
	raw := "testsalt|success|||||||||||asha@example.com|Asha|Clothing Order|499.00|CLOUT-12345|testkey"
	gatewayHash := rawSHA512Hex(t, raw)

	assert.True(t, payu.VerifyCallbackHash("success", testFields(), testKey, gatewayHash))
	assert.Equal(t, gatewayHash, payu.CallbackHash("success", testFields(), testKey))
}

func TestVerifyCallbackHashRejectsTampering(t *testing.T) {
	payu := newTestPayU(t)
	valid := payu.CallbackHash("success", testFields(), testKey)

	mutations := []struct {
		name   string
		mutate func(f *HashFields) (status, key string)
	}{
		{"amount changed", func(f *HashFields) (string, string) { f.Amount = "1.00"; return "success", testKey }},
		{"txnid changed", func(f *HashFields) (string, string) { f.TxnID = "CLOUT-99999"; return "success", testKey }},
		{"email changed", func(f *HashFields) (string, string) { f.Email = "evil@example.com"; return "success", testKey }},
		{"udf injected", func(f *HashFields) (string, string) { f.UDF5 = "x"; return "success", testKey }},
		{"status changed", func(f *HashFields) (string, string) { return "failure", testKey }},
		{"key changed", func(f *HashFields) (string, string) { return "success", "otherkey" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			fields := testFields()
			status, key := tt.mutate(&fields)
			assert.False(t, payu.VerifyCallbackHash(status, fields, key, valid))
		})
	}
}

func TestVerifyCallbackHashIsCaseSensitive(t *testing.T) {
	payu := newTestPayU(t)
	valid := payu.CallbackHash("success", testFields(), testKey)

	upper := []byte(valid)
	for i, b := range upper {
		if b >= 'a' && b <= 'f' {
			upper[i] = b - 'a' + 'A'
		}
	}
	assert.False(t, payu.VerifyCallbackHash("success", testFields(), testKey, string(upper)))
}
