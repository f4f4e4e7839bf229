package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contacts-api/internal/apperr"
)

// Messages returned to clients on authentication failure.
const (
	MsgTokenRequired = "A token is required for authentication"
	MsgInvalidToken  = "Invalid token"
)

// Identity is the authenticated principal of one request.
type Identity struct {
	Subject   uuid.UUID
	Username  string
	TokenID   string
	ExpiresAt time.Time
	Claims    *Claims
}

// Verifier turns a bearer credential into an Identity.
type Verifier struct {
	tokens TokenService
}

// NewVerifier creates a Verifier backed by tokens.
func NewVerifier(tokens TokenService) *Verifier {
	return &Verifier{tokens: tokens}
}

// Verify validates credential. Every failure is an Unauthorized
// ClassifiedError: a missing credential says so, anything else carries one
// generic message with the precise reason kept as the cause.
func (v *Verifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, apperr.UnauthorizedError(MsgTokenRequired, ErrMissingToken)
	}

	claims, err := v.tokens.ValidateToken(ctx, credential)
	if err != nil {
		return nil, apperr.UnauthorizedError(MsgInvalidToken, err)
	}
	if claims == nil || claims.UserID == uuid.Nil {
		return nil, apperr.UnauthorizedError(MsgInvalidToken, ErrInvalidToken)
	}

	return &Identity{
		Subject:   claims.UserID,
		Username:  claims.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt,
		Claims:    claims,
	}, nil
}

// StripBearer removes an optional, case-insensitive "Bearer " prefix.
func StripBearer(value string) string {
	value = strings.TrimSpace(value)
	const prefix = "bearer "
	if len(value) >= len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
		return strings.TrimSpace(value[len(prefix):])
	}
	return value
}
