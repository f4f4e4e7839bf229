package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "contacts",
		ColumnName:     "doc",
		ConstraintName: "contacts_pkey",
	}
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	generic := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "no rows", err: sql.ErrNoRows, target: store.ErrNotFound},
		{name: "unique", err: newPgError(uniqueViolationCode), target: store.ErrDuplicate},
		{name: "check", err: newPgError(checkViolationCode), target: store.ErrInvalidEntity},
		{name: "not null", err: newPgError(notNullViolationCode), target: store.ErrInvalidEntity},
		{name: "unmapped", err: generic, target: generic},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.target)
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := newPgError(uniqueViolationCode)
	err := MapUniqueViolation(pgErr, store.ErrUsernameExists)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	var got *pgconn.PgError
	assert.ErrorAs(t, err, &got)

	other := errors.New("timeout")
	assert.Equal(t, other, MapUniqueViolation(other, store.ErrUsernameExists))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrContactNotFound))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, store.ErrContactNotFound), store.ErrContactNotFound)
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver")}, store.ErrContactNotFound))
	assert.Error(t, CheckRowsAffected(nil, store.ErrContactNotFound))
}
