package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Token is the opaque bearer credential tied one-to-one to a user. It is
// created lazily on first successful verification and reused on every later
// login; there is no rotation or expiry.
type Token struct {
	Key       string
	Phone     string
	CreatedAt time.Time
}

// newTokenKey produces a 40-character hex key.
func newTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
