package payments

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Signature computes the hex-encoded SHA-512 over the gateway's fixed field
// concatenation: order_id + status_code + gross_amount + serverKey.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature reports whether the supplied signature_key matches the
// expected digest. Comparison is constant-time.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return hmac.Equal([]byte(expected), []byte(signatureKey))
}
