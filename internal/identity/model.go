package identity

import (
	"strings"
	"time"
)

// PhoneDigits is the exact number of digits a normalized phone number must have.
const PhoneDigits = 11

// User represents a phone-registered account in the referral network.
// Phone doubles as the account identity. Ref is the user's own shareable
// referral code; Invited holds the code of whoever invited them, empty until
// registered and immutable afterwards.
type User struct {
	Phone     string
	Ref       string
	Invited   string
	CreatedAt time.Time
}

// NormalizePhone strips every non-digit rune from the raw input. The result
// is a valid identity only when exactly PhoneDigits digits remain; callers
// check the length themselves.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
