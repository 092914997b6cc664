// Package domain holds error kinds shared across the domain services.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist. Credential
	// mismatches are reported as this same error so callers cannot tell
	// a wrong PIN from a missing account.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrStorageUnavailable is returned when the ledger store cannot be
	// reached. Safe for the caller to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// WrapStorage tags a storage I/O failure so the web layer can surface it as
// a 5xx and the caller knows a retry is reasonable.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
