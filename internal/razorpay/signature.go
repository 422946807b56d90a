package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPaymentSignature checks that the checkout callback signature was
// produced by the gateway for this exact order+payment pair. The digest is
// HMAC-SHA256 over "orderID|paymentID" keyed with the API secret, hex encoded.
// Comparison is constant time; empty or malformed input simply fails.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	expected := hmacHex([]byte(orderID+"|"+paymentID), secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw request body using the webhook secret.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	expected := hmacHex(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func hmacHex(message []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}
