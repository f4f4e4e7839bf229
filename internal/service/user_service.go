package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/service/auth"
	"github.com/phrazzld/contacts-api/internal/store"
)

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UserService provides account registration and sign-in.
type UserService interface {
	// SignUp registers a new user. A taken username yields DuplicateItem.
	SignUp(ctx context.Context, username, password string) (*domain.User, error)

	// SignIn checks the credentials and issues an access token. Unknown users
	// and wrong passwords produce the same InvalidInput error.
	SignIn(ctx context.Context, username, password string) (*Session, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "user_service"),
	}
}

// SignUp implements UserService
func (s *UserServiceImpl) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.users.FindOne(ctx, store.UserFilter{Username: username})
	if err != nil {
		return nil, unexpected("Failed to look up user", err)
	}
	if existing != nil {
		log.Debug("sign-up with taken username", "username", username)
		return nil, userExists(username, nil)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, unexpected("Failed to secure password", err)
	}

	user, err := domain.NewUser(username, hashed)
	if err != nil {
		return nil, apperr.InvalidInputError(err.Error(), err)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, userExists(username, err)
		}
		return nil, unexpected("Failed to create user", err)
	}

	log.Info("user created successfully", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// SignIn implements UserService
func (s *UserServiceImpl) SignIn(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.FindOne(ctx, store.UserFilter{Username: username})
	if err != nil {
		return nil, unexpected("Failed to look up user", err)
	}
	if user == nil {
		log.Debug("sign-in for unknown user", "username", username)
		return nil, apperr.InvalidInputError(MsgInvalidCredentials)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("sign-in with wrong password", "user_id", user.ID)
		return nil, apperr.InvalidInputError(MsgInvalidCredentials, err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, unexpected("Failed to issue token", err)
	}

	log.Info("user signed in", "user_id", user.ID)
	return &Session{AccessToken: token, ExpiresAt: expiresAt}, nil
}
