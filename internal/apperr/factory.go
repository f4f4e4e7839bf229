package apperr

// Constructors, one per kind. The optional cause is chained for logging.

// InvalidInputError reports a request that broke a validation or business rule (422).
func InvalidInputError(message string, cause ...error) *ClassifiedError {
	return Wrap(InvalidInput, message, first(cause))
}

// UnauthorizedError reports a missing or rejected credential (401).
func UnauthorizedError(message string, cause ...error) *ClassifiedError {
	return Wrap(Unauthorized, message, first(cause))
}

// NotFoundError reports a resource that does not exist (404).
func NotFoundError(message string, cause ...error) *ClassifiedError {
	return Wrap(NotFound, message, first(cause))
}

// OperationNotAllowedError reports an action the caller may not perform (405).
func OperationNotAllowedError(message string, cause ...error) *ClassifiedError {
	return Wrap(OperationNotAllowed, message, first(cause))
}

// DuplicateItemError reports a create that collides with an existing item (409).
func DuplicateItemError(message string, cause ...error) *ClassifiedError {
	return Wrap(DuplicateItem, message, first(cause))
}

// ConflictError reports a write that lost a race with another request (409).
func ConflictError(message string, cause ...error) *ClassifiedError {
	return Wrap(Conflict, message, first(cause))
}

// BadFormatError reports a body that could not be parsed (400).
func BadFormatError(message string, cause ...error) *ClassifiedError {
	return Wrap(BadFormat, message, first(cause))
}

// UnknownErr reports an unexpected failure. It is non-operational and stops the server.
func UnknownErr(message string, cause ...error) *ClassifiedError {
	return Wrap(UnknownError, message, first(cause))
}

func first(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
