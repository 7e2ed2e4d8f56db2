package auth

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/referral-api/referral_api/internal/identity"
)

func newTestService() *Service {
	users := identity.NewService(identity.NewMemoryRepository())
	return NewService(users, NewMemoryRepository(), nil, 0)
}

func TestLoginRejectsBadPhone(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, raw := range []string{"", "12345", "7999123456789", "no digits here"} {
		if _, err := svc.Login(ctx, raw); !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("Login(%q): expected ErrInvalidPhone, got %v", raw, err)
		}
	}
}

func TestLoginNormalizesAndIssuesCode(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Login(ctx, "+7 (999) 123-45-67")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Phone != "79991234567" {
		t.Fatalf("expected normalized phone, got %q", res.Phone)
	}
	if !regexp.MustCompile(`^\d{4}$`).MatchString(res.Code) {
		t.Fatalf("expected 4-digit zero-padded code, got %q", res.Code)
	}
}

func TestLoginCodesAreIndependent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// Codes are drawn independently per call; a long run of identical values
	// would indicate a stuck generator.
	first, err := svc.Login(ctx, "79991234567")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	for i := 0; i < 20; i++ {
		res, err := svc.Login(ctx, "79991234567")
		if err != nil {
			t.Fatalf("login %d: %v", i, err)
		}
		if res.Code != first.Code {
			return
		}
	}
	t.Fatalf("21 consecutive logins issued the same code %q", first.Code)
}

func TestVerifyRejectsMismatchedCode(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Verify(ctx, "79991234567", "1234", "4321"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if _, err := svc.Verify(ctx, "123", "1234", "1234"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("short phone: expected ErrInvalidCode, got %v", err)
	}
}

func TestVerifyCreatesThenLogsIn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Verify(ctx, "79991234567", "1234", "1234")
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if !created.Created {
		t.Fatalf("expected user creation on first verify")
	}
	if len(created.Token) != 40 {
		t.Fatalf("expected 40-char token key, got %q", created.Token)
	}
	if created.User.Ref == "" {
		t.Fatalf("expected generated ref on creation")
	}

	again, err := svc.Verify(ctx, "7 999 123 45 67", "0007", "0007")
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if again.Created {
		t.Fatalf("second verify must not create a duplicate user")
	}
	if again.Token != created.Token {
		t.Fatalf("token must be reused: %q != %q", again.Token, created.Token)
	}
	if again.User.Ref != created.User.Ref {
		t.Fatalf("ref must be immutable: %q != %q", again.User.Ref, created.User.Ref)
	}
}
