package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/contacts-api/internal/domain"
)

// ContactFilter selects a single contact by index.
type ContactFilter struct {
	Index int
}

// ContactPatch holds the top-level contact fields to overwrite, keyed by their
// JSON names. Absent keys keep their stored value.
type ContactPatch map[string]any

// UpdateOptions tunes UpdateOne.
type UpdateOptions struct {
	// Upsert inserts the patch as a new contact when nothing matches.
	Upsert bool
}

// ContactStore defines the interface for contact persistence.
type ContactStore interface {
	// FindOne returns the contact matching filter, or (nil, nil) when none does.
	FindOne(ctx context.Context, filter ContactFilter) (*domain.Contact, error)

	// Create stores a new contact and returns it.
	// Returns ErrContactIndexExists if the index is taken.
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)

	// UpdateOne merges patch into the matching contact.
	// Returns ErrContactNotFound when nothing matches and opts.Upsert is false.
	UpdateOne(ctx context.Context, filter ContactFilter, patch ContactPatch, opts UpdateOptions) error

	// LastIndex returns the highest index in use, or 0 for an empty store.
	LastIndex(ctx context.Context) (int, error)

	// WithTx returns a ContactStore that runs its queries in tx.
	WithTx(tx *sql.Tx) ContactStore
}
