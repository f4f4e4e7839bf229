//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/postgres"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/phrazzld/contacts-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactStore_Integration(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		contacts := postgres.NewPostgresContactStore(tx, nil)

		last, err := contacts.LastIndex(ctx)
		require.NoError(t, err)

		contact := &domain.Contact{
			Index:     last + 1,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Active:    true,
		}
		_, err = contacts.Create(ctx, contact)
		require.NoError(t, err)

		err = contacts.UpdateOne(ctx, store.ContactFilter{Index: contact.Index},
			store.ContactPatch{"company": "Analytical Engines"}, store.UpdateOptions{})
		require.NoError(t, err)

		got, err := contacts.FindOne(ctx, store.ContactFilter{Index: contact.Index})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Analytical Engines", got.Company)
		assert.Equal(t, "Ada", got.FirstName)

		err = contacts.UpdateOne(ctx, store.ContactFilter{Index: last + 100},
			store.ContactPatch{"company": "nobody"}, store.UpdateOptions{})
		assert.ErrorIs(t, err, store.ErrContactNotFound)

		// A failed statement aborts the transaction, so this check runs last.
		_, err = contacts.Create(ctx, contact)
		assert.ErrorIs(t, err, store.ErrContactIndexExists)
	})
}

func TestUserStore_Integration(t *testing.T) {
	db := testdb.Open(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil)

		user, err := domain.NewUser("integration-ada", "$2a$10$hash")
		require.NoError(t, err)
		_, err = users.Create(ctx, user)
		require.NoError(t, err)

		got, err := users.FindOne(ctx, store.UserFilter{Username: "integration-ada"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)

		_, err = users.Create(ctx, user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})
}
