package database

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks a failed round-trip to the record store. It is
// distinct from an empty result: callers get an empty slice for "no rows" and
// this error only when the store could not be reached or rejected the call.
var ErrStoreUnavailable = errors.New("record store unavailable")

// Unavailable wraps err so that errors.Is(result, ErrStoreUnavailable) holds
// while keeping the underlying cause inspectable.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// IsUnavailable reports whether err came from a store round-trip.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
