// Package signature verifies payment gateway HMAC-SHA256 signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// OrderPayload is the message the gateway signs when confirming a payment
// client-side. No escaping is applied to either id.
func OrderPayload(orderID, paymentID string) []byte {
	return []byte(orderID + "|" + paymentID)
}

// Sign returns the lowercase hex HMAC-SHA256 of payload under secret.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether provided is the signature of payload under secret.
// Empty signatures and secrets never verify.
func Verify(payload []byte, provided, secret string) bool {
	if provided == "" || secret == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(provided))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}
