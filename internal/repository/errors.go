package repository

import (
	"fmt"
	"strings"

	"campus-quiz/internal/domain"
)

// storageError wraps a driver failure so the error middleware reports the
// backend as unavailable rather than a generic internal error. Domain
// conditions (not-found, duplicates) are mapped before reaching it.
func storageError(op string, err error) error {
	return domain.NewStorageUnavailableError(fmt.Errorf("%s: %w", op, err))
}

// isUniqueViolation matches the SQLite unique-constraint error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
