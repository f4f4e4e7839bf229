package mocks

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contacts-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID, username string) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Token and Claims back the default implementation.
	Token  string
	Claims *auth.Claims
	Err    error

	validateCalls atomic.Int64
}

var _ auth.TokenService = (*MockTokenService)(nil)

// GenerateToken implements auth.TokenService
func (m *MockTokenService) GenerateToken(ctx context.Context, userID uuid.UUID, username string) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, username)
	}
	if m.Err != nil {
		return "", time.Time{}, m.Err
	}
	return m.Token, time.Now().Add(time.Hour), nil
}

// ValidateToken implements auth.TokenService
func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	m.validateCalls.Add(1)
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}

// ValidateCalls reports how many tokens were validated.
func (m *MockTokenService) ValidateCalls() int {
	return int(m.validateCalls.Load())
}
