package scribe

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrArchiveDisabled = errors.New("report archive not configured")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var errMissingSession = errors.New("session id required")
