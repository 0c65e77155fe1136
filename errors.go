package shopbook

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("shopbook: not found")
	ErrAlreadyExists = errors.New("shopbook: already exists")
	ErrInvalidInput  = errors.New("shopbook: invalid input")

	// Account errors
	ErrAccountNotFound    = errors.New("shopbook: account not found")
	ErrAccountInUse       = errors.New("shopbook: account is referenced by journal entries")
	ErrInvalidAccountType = errors.New("shopbook: invalid account type")

	// Entry errors
	ErrEntryNotFound   = errors.New("shopbook: journal entry not found")
	ErrSameAccount     = errors.New("shopbook: debit and credit account must differ")
	ErrInvalidAmount   = errors.New("shopbook: entry amount must be positive")
	ErrInvalidDate     = errors.New("shopbook: entry date is required")
	ErrInvalidCategory = errors.New("shopbook: unknown entry category")

	// Tenancy errors
	ErrShopMismatch = errors.New("shopbook: resource belongs to a different shop")

	// Store errors
	ErrStoreNotReady   = errors.New("shopbook: store not ready")
	ErrStoreClosed     = errors.New("shopbook: store is closed")
	ErrMigrationFailed = errors.New("shopbook: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("shopbook: validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is treat every validation failure as invalid input.
func (e ValidationError) Unwrap() error { return ErrInvalidInput }

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

// IsValidation returns true if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict returns true if the error reflects state that blocks the
// operation rather than bad input.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAccountInUse) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrShopMismatch)
}
