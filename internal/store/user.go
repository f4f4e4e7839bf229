package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/contacts-api/internal/domain"
)

// UserFilter selects a single user. Zero-valued fields are ignored; at least
// one must be set.
type UserFilter struct {
	ID       uuid.UUID
	Username string
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindOne returns the user matching filter, or (nil, nil) when none does.
	FindOne(ctx context.Context, filter UserFilter) (*domain.User, error)

	// Create saves a new user and returns the stored record.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// WithTx returns a UserStore that runs its queries in tx.
	WithTx(tx *sql.Tx) UserStore
}
