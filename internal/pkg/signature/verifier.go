// Package signature verifies gateway HMAC-SHA256 signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks webhook payloads and checkout confirmations against shared secrets.
type Verifier interface {
	VerifyPayload(payload []byte, signature, secret string) bool
	VerifyOrderPayment(orderID, paymentID, signature, secret string) bool
}

// HMACVerifier implements Verifier with the gateway's HMAC-SHA256 hex scheme.
type HMACVerifier struct{}

// NewHMACVerifier returns the default verifier.
func NewHMACVerifier() *HMACVerifier {
	return &HMACVerifier{}
}

// VerifyPayload checks signature against the exact payload bytes.
func (HMACVerifier) VerifyPayload(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	return equalSignature(Sign(payload, secret), signature)
}

// VerifyOrderPayment checks the checkout signature computed over "order_id|payment_id".
func (HMACVerifier) VerifyOrderPayment(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}
	return equalSignature(Sign([]byte(OrderPaymentPayload(orderID, paymentID)), secret), signature)
}

// OrderPaymentPayload builds the string signed by the gateway on checkout completion.
func OrderPaymentPayload(orderID, paymentID string) string {
	return orderID + "|" + paymentID
}

// Sign returns the hex HMAC-SHA256 of payload. Used by tests and local tooling
// to produce signatures the gateway would send.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// equalSignature compares hex digests in constant time.
func equalSignature(expected, signature string) bool {
	return hmac.Equal([]byte(expected), []byte(signature))
}
