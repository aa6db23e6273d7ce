package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Signer signs and verifies opaque string data. Implementations must be
// pure: Sign produces a self-contained signed string, and Unsign recovers
// the original data or reports failure. The codec assumes nothing about
// the algorithm.
type Signer interface {
	Sign(data, secret string) (string, error)
	Unsign(signed, secret string) (string, bool)
}

// HMACSigner is the default Signer. The signed format is
// base64(data) + "." + base64(hmac-sha256(data, secret)).
type HMACSigner struct{}

// Sign signs data with the given secret.
func (HMACSigner) Sign(data, secret string) (string, error) {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	sig := mac.Sum(nil)

	return base64.RawURLEncoding.EncodeToString([]byte(data)) +
		"." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Unsign verifies the signed string and returns the original data.
func (HMACSigner) Unsign(signed, secret string) (string, bool) {
	parts := strings.SplitN(signed, ".", 2)
	if len(parts) != 2 {
		return "", false
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", false
	}
	return string(data), true
}
