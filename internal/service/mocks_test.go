package service_test

import (
	"context"
	"database/sql"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// contactStoreMock is a testify mock of store.ContactStore.
type contactStoreMock struct {
	mock.Mock
}

func (m *contactStoreMock) FindOne(ctx context.Context, filter store.ContactFilter) (*domain.Contact, error) {
	args := m.Called(ctx, filter)
	c, _ := args.Get(0).(*domain.Contact)
	return c, args.Error(1)
}

func (m *contactStoreMock) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	args := m.Called(ctx, contact)
	c, _ := args.Get(0).(*domain.Contact)
	return c, args.Error(1)
}

func (m *contactStoreMock) UpdateOne(
	ctx context.Context,
	filter store.ContactFilter,
	patch store.ContactPatch,
	opts store.UpdateOptions,
) error {
	return m.Called(ctx, filter, patch, opts).Error(0)
}

func (m *contactStoreMock) LastIndex(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *contactStoreMock) WithTx(tx *sql.Tx) store.ContactStore {
	m.Called(tx)
	return m
}

// userStoreMock is a testify mock of store.UserStore.
type userStoreMock struct {
	mock.Mock
}

func (m *userStoreMock) FindOne(ctx context.Context, filter store.UserFilter) (*domain.User, error) {
	args := m.Called(ctx, filter)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *userStoreMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *userStoreMock) WithTx(tx *sql.Tx) store.UserStore {
	m.Called(tx)
	return m
}
