package directory

import (
	"errors"
	"fmt"
)

// AuthError means credentials are missing or were rejected. Callers
// must treat it as fatal for the whole run: no partial data is returned
// alongside it.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory authentication failed: %v", e.Err)
	}
	return "directory authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransientFetchError means a listing was cut short by a network or
// server error mid-pagination. The pages fetched before the failure are
// still returned; Fetched records how many items made it.
type TransientFetchError struct {
	Op      string
	Fetched int
	Err     error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("directory %s truncated after %d items: %v", e.Op, e.Fetched, e.Err)
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsTransient(err error) bool {
	var te *TransientFetchError
	return errors.As(err, &te)
}
