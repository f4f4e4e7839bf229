package service

import (
	"fmt"

	"github.com/phrazzld/contacts-api/internal/apperr"
)

// Client-facing messages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgIndexTaken         = "Contact index was taken concurrently, please retry"
)

func contactNotFound(index int) *apperr.ClassifiedError {
	return apperr.NotFoundError(fmt.Sprintf("Contact with index %d not found", index))
}

func userExists(username string, cause error) *apperr.ClassifiedError {
	return apperr.DuplicateItemError(fmt.Sprintf("User %s already exists", username), cause)
}

// unexpected wraps a storage or infrastructure failure. Errors that are
// already classified pass through unchanged.
func unexpected(message string, err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.UnknownErr(message, err)
}
