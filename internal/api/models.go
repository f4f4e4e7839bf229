package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contacts-api/internal/domain"
)

// SignUpRequest defines the payload for the sign-up endpoint.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SignInRequest defines the payload for the sign-in endpoint.
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUpResponse is returned when an account was created.
type SignUpResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

// SignInResponse carries the access token and its expiry.
type SignInResponse struct {
	AccessToken string `json:"access_token"`
	// TokenExpires is an RFC 3339 timestamp.
	TokenExpires string `json:"token_expires"`
}

// IndexParams are the path parameters of /contacts/{index}.
type IndexParams struct {
	Index int `json:"index" validate:"required,min=1"`
}

// AddressRequest is the postal address of a contact.
type AddressRequest struct {
	Street string `json:"street" validate:"required,min=5"`
	City   string `json:"city"   validate:"required,min=5"`
	State  string `json:"state"  validate:"required,min=5"`
}

// CreateContactRequest defines the payload for creating a contact.
type CreateContactRequest struct {
	DateOfBirth string          `json:"dateOfBirth" validate:"required,iso8601"`
	FirstName   string          `json:"firstName"   validate:"required,min=3"`
	LastName    string          `json:"lastName"    validate:"required,min=3"`
	Username    string          `json:"username"    validate:"required,min=3"`
	Company     string          `json:"company"     validate:"required,min=3"`
	Email       string          `json:"email"       validate:"required,email"`
	Phone       string          `json:"phone"`
	Address     *AddressRequest `json:"address"`
	JobPosition string          `json:"jobPosition"`
	Roles       []string        `json:"roles"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
}

// UpdateContactRequest validates a partial update. Only the keys present in
// the body are written, and a present key must satisfy the same rules as on
// create.
type UpdateContactRequest struct {
	DateOfBirth *string         `json:"dateOfBirth" validate:"omitnil,iso8601"`
	FirstName   *string         `json:"firstName"   validate:"omitnil,min=3"`
	LastName    *string         `json:"lastName"    validate:"omitnil,min=3"`
	Username    *string         `json:"username"    validate:"omitnil,min=3"`
	Company     *string         `json:"company"     validate:"omitnil,min=3"`
	Email       *string         `json:"email"       validate:"omitnil,email"`
	Phone       *string         `json:"phone"`
	Address     *AddressRequest `json:"address"`
	JobPosition *string         `json:"jobPosition"`
	Roles       []string        `json:"roles"`
	Active      *bool           `json:"active"`
}

// ToDomain converts the request into a contact without an index.
func (r *CreateContactRequest) ToDomain() *domain.Contact {
	c := &domain.Contact{
		DateOfBirth: r.DateOfBirth,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Username:    r.Username,
		Company:     r.Company,
		Email:       r.Email,
		Phone:       r.Phone,
		JobPosition: r.JobPosition,
		Roles:       r.Roles,
		Active:      true,
	}
	if r.Address != nil {
		c.Address = domain.Address{
			Street: r.Address.Street,
			City:   r.Address.City,
			State:  r.Address.State,
		}
	}
	if r.Active != nil {
		c.Active = *r.Active
	}
	return c
}

func formatExpiry(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
