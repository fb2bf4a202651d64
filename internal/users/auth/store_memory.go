// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
)

// MemoryUserRepository keeps accounts in process memory.
// Used by STORE_DRIVER=memory and by tests.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*User
	byUsername map[string]string
}

// NewMemoryUserRepository returns an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:       make(map[string]*User),
		byUsername: make(map[string]string),
	}
}

func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, userNotFound(id)
	}

	clone := *user
	return &clone, nil
}

func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byUsername[username]
	if !ok {
		return nil, userNotFound(username)
	}

	clone := *repository.byID[id]
	return &clone, nil
}

// Create stores a copy of user. The username check and insert happen under one lock.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byUsername[user.Username]; taken {
		return ErrUsernameTaken
	}

	clone := *user
	repository.byID[user.ID] = &clone
	repository.byUsername[user.Username] = user.ID
	return nil
}
