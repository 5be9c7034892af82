package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifetrack/internal/constants"
)

// ValidationError reports an entity that violates one of its invariants.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

func invalid(entity, field, format string, args ...interface{}) error {
	return &ValidationError{Entity: entity, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

func requireText(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(entity, field, "cannot be empty")
	}
	return nil
}

func requireRange(entity, field string, value, min, max int) error {
	if value < min || value > max {
		return invalid(entity, field, "must be between %d and %d, got %d", min, max, value)
	}
	return nil
}

func requireDate(entity, field, value string) error {
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		return invalid(entity, field, "must be a YYYY-MM-DD date, got %q", value)
	}
	return nil
}

func optionalDate(entity, field, value string) error {
	if value == "" {
		return nil
	}
	return requireDate(entity, field, value)
}

func requireOneOf[T ~string](entity, field string, value T, allowed ...T) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return invalid(entity, field, "must be one of [%s], got %q", strings.Join(names, ", "), value)
}
