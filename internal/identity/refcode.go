package identity

import "math/rand/v2"

const (
	refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	refLength   = 6
)

// newRefCode draws a candidate referral code from the 62-symbol alphanumeric
// alphabet. Codes are collision-avoidance identifiers, not secrets, so a
// non-cryptographic PRNG is sufficient; uniqueness is enforced by the
// repository, not here.
func newRefCode() string {
	buf := make([]byte, refLength)
	for i := range buf {
		buf[i] = refAlphabet[rand.IntN(len(refAlphabet))]
	}
	return string(buf)
}
