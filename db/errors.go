// ABOUTME: Store error values and SQLite error classification
// ABOUTME: Maps constraint violations to not-found, conflict, and validation errors
package db

import (
	"errors"
	"fmt"

	"github.com/harperreed/salescrm/models"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// notFound wraps ErrNotFound with the entity name, e.g. "Customer not found".
func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// classifyWriteError turns SQLite constraint failures into store errors.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return fmt.Errorf("email already in use: %w", ErrConflict)
	case sqlite3.ErrConstraintForeignKey:
		return models.NewValidationError("customerId does not reference an existing customer")
	case sqlite3.ErrConstraintNotNull:
		return models.NewValidationError("%s", sqliteErr.Error())
	}
	return err
}
