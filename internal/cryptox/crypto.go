// Package cryptox implements the HMAC request-signing scheme shared by the
// delivery API and the uploader client.
package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the base64-encoded HMAC-SHA256 of message under secret.
// The message must be the exact byte sequence transmitted on the wire:
// signing is sensitive to whitespace and field ordering, so callers must
// not re-serialize the payload between signing and sending.
func Sign(secret, message []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the valid HMAC-SHA256 signature of
// message under secret. The comparison is constant time regardless of
// where a mismatch occurs.
func Verify(secret, message []byte, signature string) bool {
	expected := Sign(secret, message)
	return hmac.Equal([]byte(signature), []byte(expected))
}
