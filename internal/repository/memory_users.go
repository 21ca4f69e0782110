package repository

import (
	"context"
	"sync"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// MemoryUsers keeps learners in memory for the redis and memory drivers.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[int64]entities.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[int64]entities.User)}
}

// Save stores user and reports whether it was new.
func (m *MemoryUsers) Save(_ context.Context, user *entities.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.users[user.ID]
	m.users[user.ID] = *user
	return !existed, nil
}

func (m *MemoryUsers) Exists(_ context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.users[userID]
	return ok, nil
}

func (m *MemoryUsers) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
