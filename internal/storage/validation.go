// Package storage provides the local SQLite backend for tables and documents.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrEmptySlice  = errors.New("slice cannot be empty")
)

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}
