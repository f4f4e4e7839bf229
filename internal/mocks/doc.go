// Package mocks provides centralized mock implementations for testing.
//
// Each mock keeps an in-memory default behavior and exposes a function field
// per method (CreateFn, FindOneFn, ...) that overrides it:
//
//	contacts := mocks.NewMockContactStore()
//	contacts.FindOneFn = func(ctx context.Context, f store.ContactFilter) (*domain.Contact, error) {
//	    return nil, errors.New("connection refused")
//	}
//
// Mocks are safe for concurrent use and count calls so tests can assert that
// a collaborator was never reached.
package mocks
