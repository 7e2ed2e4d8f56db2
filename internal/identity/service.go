package identity

import (
	"context"
	"errors"
	"time"
)

// Service manages user lifecycle and referral code assignment.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user for a previously-unseen normalized phone number,
// assigning a unique referral code. Generation re-checks the candidate before
// insert and additionally retries when the storage layer reports a
// unique-constraint collision, so a duplicate code can never commit.
func (s *Service) Register(ctx context.Context, phone string) (User, error) {
	for {
		ref := newRefCode()

		_, err := s.repo.FindByRef(ctx, ref)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return User{}, err
		}

		user := User{
			Phone:     phone,
			Ref:       ref,
			CreatedAt: time.Now().UTC(),
		}
		err = s.repo.Create(ctx, user)
		if errors.Is(err, ErrRefTaken) {
			continue // lost the race window between check and insert
		}
		if err != nil {
			return User{}, err
		}
		return user, nil
	}
}

// ByPhone fetches a user by normalized phone number.
func (s *Service) ByPhone(ctx context.Context, phone string) (User, error) {
	return s.repo.FindByPhone(ctx, phone)
}
