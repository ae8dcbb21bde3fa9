package domain

import (
	"errors"
	"fmt"
)

// FetchError reports a failed repository list request.
// StatusCode is zero when no HTTP response was received.
type FetchError struct {
	User       string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching repositories of %q: status %d: %s", e.User, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("fetching repositories of %q: %s", e.User, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError tells if err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
