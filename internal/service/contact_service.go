package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/store"
)

// ContactService provides the address book use cases.
type ContactService interface {
	// Get returns the contact with the given index or a NotFound error.
	Get(ctx context.Context, index int) (*domain.Contact, error)

	// Create assigns the next free index to contact and stores it.
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)

	// Update merges patch into an existing contact and returns the patch.
	Update(ctx context.Context, index int, patch store.ContactPatch) (store.ContactPatch, error)
}

// contactServiceImpl implements ContactService
type contactServiceImpl struct {
	contacts store.ContactStore
	db       store.TxBeginner
	logger   *slog.Logger
}

// NewContactService creates a ContactService. db may be nil, in which case
// index assignment runs without a transaction.
func NewContactService(contacts store.ContactStore, db store.TxBeginner, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactServiceImpl{
		contacts: contacts,
		db:       db,
		logger:   logger.With("component", "contact_service"),
	}
}

func (s *contactServiceImpl) Get(ctx context.Context, index int) (*domain.Contact, error) {
	contact, err := s.contacts.FindOne(ctx, store.ContactFilter{Index: index})
	if err != nil {
		return nil, unexpected("Failed to load contact", err)
	}
	if contact == nil {
		return nil, contactNotFound(index)
	}
	return contact, nil
}

func (s *contactServiceImpl) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Contact
	err := s.inTx(ctx, func(ctx context.Context, contacts store.ContactStore) error {
		last, err := contacts.LastIndex(ctx)
		if err != nil {
			return err
		}
		contact.Index = last + 1

		created, err = contacts.Create(ctx, contact)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrContactIndexExists) {
			log.Warn("contact index race lost", "index", contact.Index)
			return nil, apperr.ConflictError(MsgIndexTaken, err)
		}
		return nil, unexpected("Failed to create contact", err)
	}

	log.Info("contact created", "index", created.Index)
	return created, nil
}

func (s *contactServiceImpl) Update(
	ctx context.Context,
	index int,
	patch store.ContactPatch,
) (store.ContactPatch, error) {
	if _, err := s.Get(ctx, index); err != nil {
		return nil, err
	}

	filter := store.ContactFilter{Index: index}
	if err := s.contacts.UpdateOne(ctx, filter, patch, store.UpdateOptions{Upsert: false}); err != nil {
		if errors.Is(err, store.ErrContactNotFound) {
			return nil, contactNotFound(index)
		}
		return nil, unexpected("Failed to update contact", err)
	}
	return patch, nil
}

func (s *contactServiceImpl) inTx(ctx context.Context, fn func(context.Context, store.ContactStore) error) error {
	if s.db == nil {
		return fn(ctx, s.contacts)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.contacts.WithTx(tx))
	})
}
