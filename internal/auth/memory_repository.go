package auth

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byPhone map[string]Token
	byKey   map[string]Token
}

// NewMemoryRepository builds an in-memory token store for testing and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byPhone: make(map[string]Token),
		byKey:   make(map[string]Token),
	}
}

func (r *memoryRepository) Create(_ context.Context, token Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPhone[token.Phone]; exists {
		return errors.New("token exists")
	}
	r.byPhone[token.Phone] = token
	r.byKey[token.Key] = token
	return nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.byPhone[phone]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return token, nil
}

func (r *memoryRepository) FindByKey(_ context.Context, key string) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.byKey[key]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return token, nil
}
