package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	FindOneFn func(ctx context.Context, filter store.UserFilter) (*domain.User, error)
	CreateFn  func(ctx context.Context, user *domain.User) (*domain.User, error)

	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore(seed ...*domain.User) *MockUserStore {
	m := &MockUserStore{users: make(map[string]*domain.User)}
	for _, u := range seed {
		m.users[u.Username] = u
	}
	return m
}

var _ store.UserStore = (*MockUserStore)(nil)

// FindOne implements store.UserStore
func (m *MockUserStore) FindOne(ctx context.Context, filter store.UserFilter) (*domain.User, error) {
	if m.FindOneFn != nil {
		return m.FindOneFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if filter.Username != "" && u.Username != filter.Username {
			continue
		}
		if filter.ID != uuid.Nil && u.ID != filter.ID {
			continue
		}
		return u, nil
	}
	return nil, nil
}

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Username]; exists {
		return nil, store.ErrUsernameExists
	}
	m.users[user.Username] = user
	return user, nil
}

// WithTx implements store.UserStore; the mock has no transactions.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}
