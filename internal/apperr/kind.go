package apperr

import (
	"fmt"
	"net/http"
)

// Kind identifies one entry of the error taxonomy.
type Kind int

const (
	kindInvalid Kind = iota

	// InvalidInput is returned when request data fails schema validation.
	InvalidInput
	// Unauthorized is returned when a credential is absent or invalid.
	Unauthorized
	// NotFound is returned when a requested resource does not exist.
	NotFound
	// OperationNotAllowed is returned when the operation is not permitted.
	OperationNotAllowed
	// DuplicateItem is returned when creating an item that already exists.
	DuplicateItem
	// Conflict is returned when the request conflicts with current state.
	Conflict
	// BadFormat is returned when the request cannot be parsed at all.
	BadFormat
	// UnknownError is any unclassified fault.
	UnknownError
)

type classification struct {
	name        string
	status      int
	operational bool
}

// table is initialized once and never written afterward.
var table = map[Kind]classification{
	InvalidInput:        {"InvalidInput", http.StatusUnprocessableEntity, true},
	Unauthorized:        {"Unauthorized", http.StatusUnauthorized, true},
	NotFound:            {"NotFound", http.StatusNotFound, true},
	OperationNotAllowed: {"OperationNotAllowed", http.StatusMethodNotAllowed, true},
	DuplicateItem:       {"DuplicateItem", http.StatusConflict, true},
	Conflict:            {"Conflict", http.StatusConflict, true},
	BadFormat:           {"BadFormat", http.StatusBadRequest, true},
	UnknownError:        {"UnknownError", http.StatusInternalServerError, false},
}

// Kinds returns every kind in the taxonomy, in declaration order.
func Kinds() []Kind {
	return []Kind{
		InvalidInput,
		Unauthorized,
		NotFound,
		OperationNotAllowed,
		DuplicateItem,
		Conflict,
		BadFormat,
		UnknownError,
	}
}

func (k Kind) lookup() classification {
	c, ok := table[k]
	if !ok {
		// ALLOW-PANIC: an unlisted kind is a programming error
		panic(fmt.Sprintf("apperr: unknown error kind %d", int(k)))
	}
	return c
}

// Valid reports whether k is part of the taxonomy.
func (k Kind) Valid() bool {
	_, ok := table[k]
	return ok
}

// String returns the kind's taxonomy name.
func (k Kind) String() string {
	if c, ok := table[k]; ok {
		return c.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// HTTPStatus returns the status code mapped to k.
func (k Kind) HTTPStatus() int {
	return k.lookup().status
}

// Operational reports whether errors of kind k are expected failures.
func (k Kind) Operational() bool {
	return k.lookup().operational
}
