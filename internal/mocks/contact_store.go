package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
)

// MockContactStore implements store.ContactStore for testing
type MockContactStore struct {
	FindOneFn   func(ctx context.Context, filter store.ContactFilter) (*domain.Contact, error)
	CreateFn    func(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	UpdateOneFn func(ctx context.Context, filter store.ContactFilter, patch store.ContactPatch, opts store.UpdateOptions) error
	LastIndexFn func(ctx context.Context) (int, error)

	mu       sync.Mutex
	contacts map[int]*domain.Contact
	calls    map[string]int
}

// NewMockContactStore creates an empty in-memory contact store.
func NewMockContactStore(seed ...*domain.Contact) *MockContactStore {
	m := &MockContactStore{
		contacts: make(map[int]*domain.Contact),
		calls:    make(map[string]int),
	}
	for _, c := range seed {
		cp := *c
		m.contacts[c.Index] = &cp
	}
	return m
}

var _ store.ContactStore = (*MockContactStore)(nil)

// Calls returns how many times method was invoked.
func (m *MockContactStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockContactStore) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

// FindOne implements store.ContactStore
func (m *MockContactStore) FindOne(ctx context.Context, filter store.ContactFilter) (*domain.Contact, error) {
	m.record("FindOne")
	if m.FindOneFn != nil {
		return m.FindOneFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[filter.Index]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// Create implements store.ContactStore
func (m *MockContactStore) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, contact)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.contacts[contact.Index]; exists {
		return nil, store.ErrContactIndexExists
	}
	cp := *contact
	m.contacts[contact.Index] = &cp
	return contact, nil
}

// UpdateOne implements store.ContactStore. The default merges only the
// fields it knows by JSON name.
func (m *MockContactStore) UpdateOne(
	ctx context.Context,
	filter store.ContactFilter,
	patch store.ContactPatch,
	opts store.UpdateOptions,
) error {
	m.record("UpdateOne")
	if m.UpdateOneFn != nil {
		return m.UpdateOneFn(ctx, filter, patch, opts)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[filter.Index]
	if !ok {
		if !opts.Upsert {
			return store.ErrContactNotFound
		}
		c = &domain.Contact{Index: filter.Index}
		m.contacts[filter.Index] = c
	}
	applyPatch(c, patch)
	return nil
}

// LastIndex implements store.ContactStore
func (m *MockContactStore) LastIndex(ctx context.Context) (int, error) {
	m.record("LastIndex")
	if m.LastIndexFn != nil {
		return m.LastIndexFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	last := 0
	for idx := range m.contacts {
		if idx > last {
			last = idx
		}
	}
	return last, nil
}

// WithTx implements store.ContactStore; the mock has no transactions.
func (m *MockContactStore) WithTx(*sql.Tx) store.ContactStore {
	return m
}

func applyPatch(c *domain.Contact, patch store.ContactPatch) {
	str := func(key string, dst *string) {
		if v, ok := patch[key].(string); ok {
			*dst = v
		}
	}
	str("dateOfBirth", &c.DateOfBirth)
	str("firstName", &c.FirstName)
	str("lastName", &c.LastName)
	str("username", &c.Username)
	str("company", &c.Company)
	str("email", &c.Email)
	str("phone", &c.Phone)
	str("jobPosition", &c.JobPosition)
	if v, ok := patch["active"].(bool); ok {
		c.Active = v
	}
}
