package errors

import (
	"regexp"
	"strings"
)

// columnIDRegex matches identifiers accepted by the column stores: UUIDs and
// simple slugs.
var columnIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateColumnID validates a column identifier for safety and correctness.
// Identifiers become file names in the file store and document keys in
// MongoDB, so they are restricted to a conservative character set:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No path separators, traversal sequences or control characters
func ValidateColumnID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "column id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "column id too long (max 128 characters)")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "column id cannot contain %q", "..")
	}

	if !columnIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid column id: %q", id)
	}

	return nil
}
