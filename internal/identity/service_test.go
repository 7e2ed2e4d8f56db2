package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+7 (999) 123-45-67": "79991234567",
		"79991234567":        "79991234567",
		"phone":              "",
		"7999123":            "7999123",
	}
	for raw, want := range cases {
		if got := NormalizePhone(raw); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestRegisterAssignsRef(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "79991234567")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(user.Ref) != refLength {
		t.Fatalf("expected %d-char ref, got %q", refLength, user.Ref)
	}
	for _, r := range user.Ref {
		if !strings.ContainsRune(refAlphabet, r) {
			t.Fatalf("ref %q contains %q outside the alphanumeric alphabet", user.Ref, r)
		}
	}
	if user.Invited != "" {
		t.Fatalf("expected empty invited, got %q", user.Invited)
	}

	stored, err := repo.FindByPhone(ctx, "79991234567")
	if err != nil {
		t.Fatalf("find by phone: %v", err)
	}
	if stored.Ref != user.Ref {
		t.Fatalf("stored ref %q != returned ref %q", stored.Ref, user.Ref)
	}
}

func TestRegisterRefsAreUnique(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	seen := make(map[string]bool)
	phones := []string{"79990000001", "79990000002", "79990000003", "79990000004"}
	for _, phone := range phones {
		user, err := svc.Register(ctx, phone)
		if err != nil {
			t.Fatalf("register %s: %v", phone, err)
		}
		if seen[user.Ref] {
			t.Fatalf("duplicate ref %q", user.Ref)
		}
		seen[user.Ref] = true
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "79991234567"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "79991234567"); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got %v", err)
	}
}

func TestSetInvitedIsSingleShot(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Register(ctx, "79990000001")
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := svc.Register(ctx, "79990000002")
	if err != nil {
		t.Fatalf("register b: %v", err)
	}

	if err := repo.SetInvited(ctx, b.Phone, a.Ref); err != nil {
		t.Fatalf("set invited: %v", err)
	}
	if err := repo.SetInvited(ctx, b.Phone, a.Ref); !errors.Is(err, ErrAlreadyInvited) {
		t.Fatalf("expected ErrAlreadyInvited, got %v", err)
	}
}
