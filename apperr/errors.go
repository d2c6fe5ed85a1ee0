package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthenticated     = errors.New("you are not authenticated")
	ErrNotAuthorized        = errors.New("you are not authorized")
	ErrNotFound             = errors.New("not found")
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrEmptyCart            = errors.New("no items in cart")
	ErrBadCredentials       = errors.New("unable to log in with provided credentials")
	ErrInvalidFieldSet      = errors.New("invalid set of fields for this update")
	ErrNotAMember           = errors.New("user is not a member of this group")
	ErrReferentialIntegrity = errors.New("resource is still referenced")
	ErrUnavailable          = errors.New("service unavailable")
)

// ValidationError reports a malformed field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransactionFailedError wraps whatever aborted a multi-write unit after
// it was rolled back.
type TransactionFailedError struct {
	Op  string
	Err error
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("%s: transaction failed: %v", e.Op, e.Err)
}

func (e *TransactionFailedError) Unwrap() error { return e.Err }

// NotFound wraps ErrNotFound with the kind and id that were looked up.
func NotFound(kind string, id any) error {
	return fmt.Errorf("%s %v %w", kind, id, ErrNotFound)
}

// HTTPStatus maps an error onto the response status class it belongs to.
func HTTPStatus(err error) int {
	var validation *ValidationError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotAMember), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidFieldSet), errors.Is(err, ErrBadCredentials),
		errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, ErrReferentialIntegrity):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
