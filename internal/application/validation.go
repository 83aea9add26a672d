package application

import (
	"fmt"
	"strconv"
)

// Accepted bounds for the identifier buffer, in characters
const (
	MinIDCapacity = 1
	MaxIDCapacity = 32 * 1024
)

// ValidateIDCapacity checks an identifier buffer capacity.
// Returns a ValidationError if it is out of bounds.
func ValidateIDCapacity(fieldName string, capacity int) error {
	if capacity < MinIDCapacity || capacity > MaxIDCapacity {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be between %d and %d, got %d", formatFieldName(fieldName), MinIDCapacity, MaxIDCapacity, capacity),
		}
	}
	return nil
}

// ParseIDCapacity parses and validates a capacity given as text (flag or
// environment variable)
func ParseIDCapacity(fieldName, value string) (int, error) {
	capacity, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is not a number: %q", formatFieldName(fieldName), value),
			Err:     err,
		}
	}
	if err := ValidateIDCapacity(fieldName, capacity); err != nil {
		return 0, err
	}
	return capacity, nil
}

// formatFieldName converts field names to readable words for error messages
// (e.g., "idCapacity" -> "identifier capacity")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"idCapacity":          "identifier capacity",
		"DEVTREE_ID_CAPACITY": "identifier capacity",
		"mode":                "mode",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}
