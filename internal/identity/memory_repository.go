package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
	order []string // phones in insertion order
}

// NewMemoryRepository builds an in-memory user store for testing and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Phone]; exists {
		return ErrPhoneExists
	}
	for _, u := range r.users {
		if u.Ref == user.Ref {
			return ErrRefTaken
		}
	}
	r.users[user.Phone] = user
	r.order = append(r.order, user.Phone)
	return nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[phone]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByRef(_ context.Context, ref string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Ref == ref {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) ListInvitedBy(_ context.Context, ref string) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []User
	for _, phone := range r.order {
		if user := r.users[phone]; user.Invited == ref {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *memoryRepository) SetInvited(_ context.Context, phone, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return ErrNotFound
	}
	if user.Invited != "" {
		return ErrAlreadyInvited
	}
	user.Invited = ref
	r.users[phone] = user
	return nil
}
