package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/referral-api/referral_api/internal/identity"
	"github.com/referral-api/referral_api/internal/notification"
)

var (
	// ErrInvalidPhone indicates the submitted phone does not normalize to
	// exactly 11 digits.
	ErrInvalidPhone = errors.New("Phone number must have exactly 11 digits.")
	// ErrInvalidCode indicates the code and verify fields disagree.
	ErrInvalidCode = errors.New("Invalid code.")
)

// Service implements the login and verification flows.
type Service struct {
	users    *identity.Service
	tokens   Repository
	sms      notification.Sender
	smsDelay time.Duration
}

// NewService creates an auth service. smsDelay simulates the SMS-dispatch
// round trip before a login response is returned.
func NewService(users *identity.Service, tokens Repository, sms notification.Sender, smsDelay time.Duration) *Service {
	return &Service{users: users, tokens: tokens, sms: sms, smsDelay: smsDelay}
}

// LoginResult carries the normalized phone and the code issued for it.
type LoginResult struct {
	Phone string
	Code  string
}

// Login validates the phone number and issues a fresh 4-digit verification
// code. The code is not persisted anywhere; it is handed back to the caller
// (a development stand-in for SMS delivery) and logged via the sender stub.
func (s *Service) Login(ctx context.Context, rawPhone string) (LoginResult, error) {
	phone := identity.NormalizePhone(rawPhone)
	if len(phone) != identity.PhoneDigits {
		return LoginResult{}, ErrInvalidPhone
	}

	code := fmt.Sprintf("%04d", rand.IntN(9999)+1)

	if s.sms != nil {
		if err := s.sms.SendCode(ctx, phone, code); err != nil {
			return LoginResult{}, err
		}
	}

	if s.smsDelay > 0 {
		select {
		case <-time.After(s.smsDelay):
		case <-ctx.Done():
			return LoginResult{}, ctx.Err()
		}
	}

	return LoginResult{Phone: phone, Code: code}, nil
}

// VerifyResult carries the resolved user, their bearer token and whether the
// user was created by this verification.
type VerifyResult struct {
	User    identity.User
	Token   string
	Created bool
}

// Verify checks the submitted code against the verify field (internal
// consistency only; the login-issued code is never stored, so there is no
// cross-validation against it) and logs the user in, creating the account and
// its token on first contact. Token issuance is idempotent: an existing user
// always gets their stored key back.
func (s *Service) Verify(ctx context.Context, rawPhone, code, verify string) (VerifyResult, error) {
	phone := identity.NormalizePhone(rawPhone)
	if len(phone) != identity.PhoneDigits || code != verify {
		return VerifyResult{}, ErrInvalidCode
	}

	user, err := s.users.ByPhone(ctx, phone)
	if err == nil {
		key, err := s.tokenFor(ctx, user.Phone)
		if err != nil {
			return VerifyResult{}, err
		}
		return VerifyResult{User: user, Token: key}, nil
	}
	if !errors.Is(err, identity.ErrNotFound) {
		return VerifyResult{}, err
	}

	user, err = s.users.Register(ctx, phone)
	if err != nil {
		return VerifyResult{}, err
	}
	key, err := s.tokenFor(ctx, user.Phone)
	if err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{User: user, Token: key, Created: true}, nil
}

// tokenFor returns the user's stored token key, creating one on first use.
func (s *Service) tokenFor(ctx context.Context, phone string) (string, error) {
	token, err := s.tokens.FindByPhone(ctx, phone)
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, ErrTokenNotFound) {
		return "", err
	}

	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	token = Token{Key: key, Phone: phone, CreatedAt: time.Now().UTC()}
	if err := s.tokens.Create(ctx, token); err != nil {
		// Another verification for the same phone may have won the race;
		// fall back to the stored key.
		if stored, findErr := s.tokens.FindByPhone(ctx, phone); findErr == nil {
			return stored.Key, nil
		}
		return "", err
	}
	return token.Key, nil
}
