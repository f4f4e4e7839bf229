package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/phrazzld/contacts-api/internal/apperr"
	"github.com/phrazzld/contacts-api/internal/schema"
	"github.com/phrazzld/contacts-api/internal/service/auth"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

// Verifier validates a credential and returns the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*auth.Identity, error)
}

// authenticate requires a valid credential before anything else runs.
func authenticate(v Verifier, header string) Stage {
	return func(ex *Exchange) error {
		ex.setState(Authenticating)

		id, err := v.Verify(ex.Context(), credential(ex.Request, header))
		if err != nil {
			return err
		}
		ex.setIdentity(id)
		return nil
	}
}

// credential reads the token from the configured header, falling back to
// "Authorization: Bearer <token>".
func credential(r *http.Request, header string) string {
	if v := auth.StripBearer(r.Header.Get(header)); v != "" {
		return v
	}
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) > len("bearer ") && strings.EqualFold(v[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(v[len("bearer "):])
	}
	return ""
}

// decodeBody parses the JSON request body into ex.Body.
func decodeBody(ex *Exchange) error {
	ex.setState(Validating)

	body := ex.Request.Body
	if body == nil || body == http.NoBody {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return apperr.BadFormatError("Failed to read request body", err)
	}
	if len(raw) > MaxBodyBytes {
		return apperr.BadFormatError("Request body too large")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return apperr.BadFormatError("Malformed JSON in request body", err)
	}
	ex.Body = v
	return nil
}

// validate checks every facet against the route's schemas.
func validate(ex *Exchange) error {
	ex.setState(Validating)
	return schema.Validate(ex.facets(), ex.Route.Schemas)
}
