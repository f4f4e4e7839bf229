package apperr

import (
	"errors"
	"fmt"
	"time"
)

// ClassifiedError is the single error type that flows through the request
// pipeline. Its status and operational flag are methods computed from Kind,
// so no call site can set them independently.
type ClassifiedError struct {
	Kind       Kind
	Message    string
	Cause      error
	OccurredAt time.Time
}

// Sentinels usable with errors.Is. Matching compares kinds only.
var (
	ErrInvalidInput        = &ClassifiedError{Kind: InvalidInput}
	ErrUnauthorized        = &ClassifiedError{Kind: Unauthorized}
	ErrNotFound            = &ClassifiedError{Kind: NotFound}
	ErrOperationNotAllowed = &ClassifiedError{Kind: OperationNotAllowed}
	ErrDuplicateItem       = &ClassifiedError{Kind: DuplicateItem}
	ErrConflict            = &ClassifiedError{Kind: Conflict}
	ErrBadFormat           = &ClassifiedError{Kind: BadFormat}
	ErrUnknown             = &ClassifiedError{Kind: UnknownError}
)

// now is replaced in tests.
var now = time.Now

// New constructs a ClassifiedError. It panics if kind is not in the taxonomy.
func New(kind Kind, message string) *ClassifiedError {
	return Wrap(kind, message, nil)
}

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *ClassifiedError {
	return Wrap(kind, fmt.Sprintf(format, args...), nil)
}

// Wrap constructs a ClassifiedError that chains cause. The cause is used for
// logging only and is never exposed to the caller.
func Wrap(kind Kind, message string, cause error) *ClassifiedError {
	kind.lookup()
	return &ClassifiedError{
		Kind:       kind,
		Message:    message,
		Cause:      cause,
		OccurredAt: now(),
	}
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// Is matches another ClassifiedError of the same kind.
func (e *ClassifiedError) Is(target error) bool {
	t, ok := target.(*ClassifiedError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// HTTPStatus returns the status code derived from the error's kind.
func (e *ClassifiedError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Operational reports whether the error is an expected failure.
func (e *ClassifiedError) Operational() bool {
	return e.Kind.Operational()
}

// As extracts the outermost ClassifiedError from err's chain.
func As(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) && ce.Kind.Valid() {
		return ce, true
	}
	return nil, false
}

// Classify returns err as a ClassifiedError, wrapping anything unclassified
// as UnknownError with err as its cause. A nil err yields nil.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	if ce, ok := As(err); ok {
		return ce
	}
	return Wrap(UnknownError, "An unexpected error occurred", err)
}

// KindOf returns the kind of err, or UnknownError when err is unclassified.
func KindOf(err error) Kind {
	if ce, ok := As(err); ok {
		return ce.Kind
	}
	return UnknownError
}
