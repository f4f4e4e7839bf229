package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// PostgresContactStore implements store.ContactStore. Each contact is one
// row keyed by index with the remaining fields in a JSONB document.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a new PostgreSQL implementation of the ContactStore interface.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

var _ store.ContactStore = (*PostgresContactStore)(nil)

// WithTx implements store.ContactStore.WithTx
func (s *PostgresContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return &PostgresContactStore{db: tx, logger: s.logger}
}

// FindOne implements store.ContactStore.FindOne
func (s *PostgresContactStore) FindOne(ctx context.Context, filter store.ContactFilter) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		index int
		doc   []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT "index", doc FROM contacts WHERE "index" = $1`, filter.Index,
	).Scan(&index, &doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found", slog.Int("index", filter.Index))
			return nil, nil
		}
		log.Error("failed to query contact",
			slog.String("error", err.Error()),
			slog.Int("index", filter.Index))
		return nil, store.NewStoreError("contact", "find", "query failed", MapError(err))
	}

	var contact domain.Contact
	if err := json.Unmarshal(doc, &contact); err != nil {
		return nil, store.NewStoreError("contact", "find", "stored document is not valid JSON", err)
	}
	contact.Index = index
	return &contact, nil
}

// Create implements store.ContactStore.Create
func (s *PostgresContactStore) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	doc, err := json.Marshal(contact)
	if err != nil {
		return nil, store.NewStoreError("contact", "create", "failed to encode document", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts ("index", doc) VALUES ($1, $2)`, contact.Index, doc,
	); err != nil {
		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.Int("index", contact.Index))
		return nil, MapUniqueViolation(err, store.ErrContactIndexExists)
	}

	log.Info("contact created", slog.Int("index", contact.Index))
	return contact, nil
}

// UpdateOne implements store.ContactStore.UpdateOne
func (s *PostgresContactStore) UpdateOne(
	ctx context.Context,
	filter store.ContactFilter,
	patch store.ContactPatch,
	opts store.UpdateOptions,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fields := make(map[string]any, len(patch))
	for k, v := range patch {
		if k != "index" {
			fields[k] = v
		}
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return store.NewStoreError("contact", "update", "failed to encode patch", err)
	}

	if opts.Upsert {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO contacts ("index", doc) VALUES ($1, $2::jsonb)
			ON CONFLICT ("index") DO UPDATE
			SET doc = contacts.doc || EXCLUDED.doc, updated_at = NOW()`,
			filter.Index, doc)
		if err != nil {
			log.Error("failed to upsert contact",
				slog.String("error", err.Error()),
				slog.Int("index", filter.Index))
			return MapError(err)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET doc = doc || $2::jsonb, updated_at = NOW() WHERE "index" = $1`,
		filter.Index, doc)
	if err != nil {
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.Int("index", filter.Index))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrContactNotFound); err != nil {
		return err
	}

	log.Debug("contact updated", slog.Int("index", filter.Index), slog.Int("fields", len(fields)))
	return nil
}

// LastIndex implements store.ContactStore.LastIndex
func (s *PostgresContactStore) LastIndex(ctx context.Context) (int, error) {
	var last int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX("index"), 0) FROM contacts`,
	).Scan(&last); err != nil {
		return 0, store.NewStoreError("contact", "last_index", "query failed", MapError(err))
	}
	return last, nil
}
