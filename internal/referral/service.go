package referral

import (
	"context"
	"errors"

	"github.com/referral-api/referral_api/internal/identity"
)

var (
	// ErrCodeRequired indicates the ref_code field was empty or missing.
	ErrCodeRequired = errors.New("Referral code is required.")
	// ErrAlreadyRegistered indicates the user's invited code is set and
	// cannot be modified.
	ErrAlreadyRegistered = errors.New("You cannot modify a registered referral code.")
	// ErrNoSuchCode indicates no user owns the submitted referral code.
	ErrNoSuchCode = errors.New("No such code exists.")
	// ErrSelfInvite indicates the user submitted their own referral code.
	ErrSelfInvite = errors.New("You cannot invite yourself.")
)

// Service exposes the referral network for a user: who they invited, who
// invited them, and the one-shot registration of an inviter's code.
type Service struct {
	users identity.Repository
}

// NewService creates a referral service over the user store.
func NewService(users identity.Repository) *Service {
	return &Service{users: users}
}

// Overview is the referral state visible to one user.
type Overview struct {
	Users   []string // phones of users this user invited, oldest first
	Ref     string
	Invited string
}

// Overview resolves the caller's referral state. Read-only.
func (s *Service) Overview(ctx context.Context, phone string) (Overview, error) {
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return Overview{}, err
	}

	invited, err := s.users.ListInvitedBy(ctx, user.Ref)
	if err != nil {
		return Overview{}, err
	}

	phones := make([]string, 0, len(invited))
	for _, u := range invited {
		phones = append(phones, u.Phone)
	}

	return Overview{Users: phones, Ref: user.Ref, Invited: user.Invited}, nil
}

// Register links the caller to the owner of refCode. The check order is part
// of the API contract: empty code, then caller existence, then already-set,
// then code existence, then self-invitation. The final write is a
// compare-and-swap on the invited column being empty, so a concurrent
// registration by the same user cannot slip a second value in.
func (s *Service) Register(ctx context.Context, phone, refCode string) error {
	if refCode == "" {
		return ErrCodeRequired
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if user.Invited != "" {
		return ErrAlreadyRegistered
	}

	if _, err := s.users.FindByRef(ctx, refCode); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return ErrNoSuchCode
		}
		return err
	}

	if refCode == user.Ref {
		return ErrSelfInvite
	}

	if err := s.users.SetInvited(ctx, phone, refCode); err != nil {
		if errors.Is(err, identity.ErrAlreadyInvited) {
			return ErrAlreadyRegistered
		}
		return err
	}
	return nil
}
