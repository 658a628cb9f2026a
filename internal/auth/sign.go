// Package auth implements Bittrex request signing: a hex-encoded
// HMAC-SHA512 over the message using the API secret as key. The same
// signature scheme covers both REST requests (signing the full URL) and
// the socket authentication handshake (signing the challenge token).
package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Sign returns the hex-encoded HMAC-SHA512 of message keyed with secret.
func Sign(message, secret []byte) string {
	mac := hmac.New(sha512.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}
