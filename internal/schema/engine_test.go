package schema

import (
	"errors"
	"testing"

	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type indexParams struct {
	Index int `json:"index" validate:"required,min=1"`
}

type address struct {
	Street string `json:"street" validate:"required,min=5"`
	City   string `json:"city"   validate:"required,min=5"`
	State  string `json:"state"  validate:"required,min=5"`
}

type contactBody struct {
	DateOfBirth string   `json:"dateOfBirth" validate:"required,iso8601"`
	FirstName   string   `json:"firstName"   validate:"required,min=3"`
	LastName    string   `json:"lastName"    validate:"required,min=3"`
	Email       string   `json:"email"       validate:"required,email"`
	Address     *address `json:"address"`
	Roles       []string `json:"roles"`
	Active      *bool    `json:"active"`
}

type tokenHeaders struct {
	Token string `json:"x-access-token" validate:"required"`
}

type pageQuery struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

func validContact() map[string]any {
	return map[string]any{
		"dateOfBirth": "1990-04-12",
		"firstName":   "Grace",
		"lastName":    "Hopper",
		"email":       "grace@example.com",
		"address": map[string]any{
			"street": "Main Street 1",
			"city":   "Arlington",
			"state":  "Virginia",
		},
		"roles": []any{"admin", "dev"},
	}
}

// countingSchema records how many times it ran.
type countingSchema struct {
	calls int
	err   error
}

func (s *countingSchema) Validate(data any, opts Options) error {
	s.calls++
	return s.err
}

func TestValidate_NilSetAndMissingSchemas(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(Facets{}, nil))
	assert.NoError(t, Validate(Facets{Body: map[string]any{"anything": 1}}, &RouteSchemaSet{}))
}

func TestValidate_ValidPayload(t *testing.T) {
	t.Parallel()

	set := &RouteSchemaSet{
		Params: For[indexParams](),
		Body:   For[contactBody](),
	}
	facets := Facets{
		Params: map[string]any{"index": "1000"},
		Body:   validContact(),
	}

	assert.NoError(t, Validate(facets, set))
	// A second pass over the same input must behave identically.
	assert.NoError(t, Validate(facets, set))
	assert.Equal(t, validContact(), facets.Body, "input must not be mutated")
}

func TestValidate_BodyErrors(t *testing.T) {
	t.Parallel()

	set := &RouteSchemaSet{Body: For[contactBody]()}

	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		message string
	}{
		{
			name:    "missing first name",
			mutate:  func(m map[string]any) { delete(m, "firstName") },
			message: `Invalid Request Body - "firstName" is required`,
		},
		{
			name:    "invalid email",
			mutate:  func(m map[string]any) { m["email"] = "not-an-email" },
			message: `Invalid Request Body - "email" must be a valid email`,
		},
		{
			name:    "invalid date of birth",
			mutate:  func(m map[string]any) { m["dateOfBirth"] = "12/04/1990" },
			message: `Invalid Request Body - "dateOfBirth" must be in ISO 8601 date format`,
		},
		{
			name:    "short last name",
			mutate:  func(m map[string]any) { m["lastName"] = "Ho" },
			message: `Invalid Request Body - "lastName" length must be at least 3 characters long`,
		},
		{
			name:    "nested address field",
			mutate:  func(m map[string]any) { m["address"].(map[string]any)["city"] = "NY" },
			message: `Invalid Request Body - "address.city" length must be at least 5 characters long`,
		},
		{
			name:    "unknown key",
			mutate:  func(m map[string]any) { m["nickname"] = "amazing" },
			message: `Invalid Request Body - "nickname" is not allowed`,
		},
		{
			name:    "wrong type",
			mutate:  func(m map[string]any) { m["firstName"] = 42.0 },
			message: `Invalid Request Body - "firstName" must be a string`,
		},
		{
			name:    "explicit null on optional field",
			mutate:  func(m map[string]any) { m["roles"] = nil },
			message: `Invalid Request Body - "roles" must be an array`,
		},
		{
			name:    "explicit null on nested object",
			mutate:  func(m map[string]any) { m["address"] = nil },
			message: `Invalid Request Body - "address" must be of type object`,
		},
		{
			name:    "explicit null on required field",
			mutate:  func(m map[string]any) { m["email"] = nil },
			message: `Invalid Request Body - "email" must be a string`,
		},
		{
			name:    "strings are not coerced in the body",
			mutate:  func(m map[string]any) { m["active"] = "true" },
			message: `Invalid Request Body - "active" must be a boolean`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validContact()
			tt.mutate(body)

			err := Validate(Facets{Body: body}, set)
			require.Error(t, err)

			ce, ok := apperr.As(err)
			require.True(t, ok, "validation failures must be classified")
			assert.Equal(t, apperr.InvalidInput, ce.Kind)
			assert.Equal(t, 422, ce.HTTPStatus())
			assert.True(t, ce.Operational())
			assert.Equal(t, tt.message, ce.Message)
		})
	}
}

func TestValidate_AbsentBodyIsEmptyObject(t *testing.T) {
	t.Parallel()

	err := Validate(Facets{}, &RouteSchemaSet{Body: For[contactBody]()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `Invalid Request Body - "dateOfBirth" is required`)
}

func TestValidate_BodyMustBeObject(t *testing.T) {
	t.Parallel()

	err := Validate(Facets{Body: []any{1, 2}}, &RouteSchemaSet{Body: For[contactBody]()})

	ce, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, `Invalid Request Body - "value" must be of type object`, ce.Message)
}

func TestValidate_ParamsCoercion(t *testing.T) {
	t.Parallel()

	set := &RouteSchemaSet{Params: For[indexParams]()}

	assert.NoError(t, Validate(Facets{Params: map[string]any{"index": "29"}}, set))

	err := Validate(Facets{Params: map[string]any{"index": "xxxxxx"}}, set)
	ce, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, `Invalid URL Parameters - "index" must be a number`, ce.Message)

	err = Validate(Facets{Params: map[string]any{"index": "0"}}, set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"index" is required`)
}

func TestValidate_FirstFailingFacetWins(t *testing.T) {
	t.Parallel()

	set := &RouteSchemaSet{
		Params: For[indexParams](),
		Body:   For[contactBody](),
	}
	facets := Facets{
		Params: map[string]any{"index": "abc"},
		Body:   map[string]any{},
	}

	for i := 0; i < 20; i++ {
		err := Validate(facets, set)
		ce, ok := apperr.As(err)
		require.True(t, ok)
		assert.Contains(t, ce.Message, LabelParams)
		assert.NotContains(t, ce.Message, LabelBody)
	}
}

func TestValidate_OrderStopsLaterFacets(t *testing.T) {
	t.Parallel()

	query := &countingSchema{err: &ValidationError{Field: "limit", Message: `"limit" is bad`}}
	body := &countingSchema{}
	set := &RouteSchemaSet{Query: query, Body: body}

	err := Validate(Facets{}, set)

	require.Error(t, err)
	assert.Equal(t, 1, query.calls)
	assert.Equal(t, 0, body.calls, "body must not run after query failed")
	assert.Contains(t, err.Error(), "Invalid URL Query")
}

func TestValidate_HeadersAllowUnknown(t *testing.T) {
	t.Parallel()

	set := &RouteSchemaSet{Headers: For[tokenHeaders]()}

	headers := map[string]any{
		"x-access-token": "abc",
		"user-agent":     "curl/8.0",
		"accept":         "*/*",
	}
	assert.NoError(t, Validate(Facets{Headers: headers}, set))

	err := Validate(Facets{Headers: map[string]any{"accept": "*/*"}}, set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Invalid Headers - "x-access-token" is required`)
}

func TestValidate_QueryRejectsUnknownUnlessAllowed(t *testing.T) {
	t.Parallel()

	strict := &RouteSchemaSet{Query: For[pageQuery]()}
	lenient := &RouteSchemaSet{Query: For[pageQuery]().AllowUnknown()}
	query := map[string]any{"limit": "10", "sort": "asc"}

	err := Validate(Facets{Query: query}, strict)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sort" is not allowed`)

	assert.NoError(t, Validate(Facets{Query: query}, lenient))

	err = Validate(Facets{Query: map[string]any{"limit": "1000"}}, lenient)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"limit" must be less than or equal to 100`)
}

func TestValidate_NonSchemaErrorIsNotInvalidInput(t *testing.T) {
	t.Parallel()

	cause := errors.New("lookup table unavailable")
	set := &RouteSchemaSet{Body: &countingSchema{err: cause}}

	err := Validate(Facets{}, set)

	ce, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.UnknownError, ce.Kind)
	assert.False(t, ce.Operational())
	assert.ErrorIs(t, err, cause)
}

func TestDecodeReturnsTypedValue(t *testing.T) {
	t.Parallel()

	got, err := For[contactBody]().Decode(validContact(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Arlington", got.Address.City)
	assert.Equal(t, []string{"admin", "dev"}, got.Roles)
	assert.Nil(t, got.Active)
}

func TestForPanicsOnNonStruct(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { For[string]() })
}
