package entities

import (
	"errors"
	"fmt"
)

var (
	ErrProgressNotFound    = errors.New("progress not found")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrUnlockNotFound      = errors.New("unlock not found")

	ErrAchievementCodeExists = errors.New("achievement code already exists")

	// ErrAlreadyUnlocked is returned by the ledger when the (user, achievement)
	// pair already exists. The reconciliation sweep absorbs it.
	ErrAlreadyUnlocked = errors.New("achievement already unlocked")
)

// ValidationError reports malformed input rejected before it reaches storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
