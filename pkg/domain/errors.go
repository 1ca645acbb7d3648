package domain

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is matched by every ErrNotFound through errors.Is.
var ErrRecordNotFound = errors.New("record not found")

// ErrNotFound is returned when a write targets a record that does not exist.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Is lets errors.Is match ErrRecordNotFound.
func (e ErrNotFound) Is(target error) bool {
	return target == ErrRecordNotFound
}

// NotFound builds an ErrNotFound for the entity and id.
func NotFound(entity EntityType, id string) error {
	return ErrNotFound{Entity: entity, ID: id}
}

// ErrAlreadyExists is wrapped by creates that reuse an existing id.
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalid is matched by every ValidationError through errors.Is.
var ErrInvalid = errors.New("invalid value")

// ValidationError reports a field value outside its allowed domain.
type ValidationError struct {
	Entity  EntityType
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

// Is lets errors.Is match ErrInvalid.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Invalid builds a ValidationError.
func Invalid(entity EntityType, field, format string, args ...any) error {
	return ValidationError{Entity: entity, Field: field, Message: fmt.Sprintf(format, args...)}
}

// EntityOf extracts the entity type carried by a not-found error.
func EntityOf(err error) (EntityType, bool) {
	var nf ErrNotFound
	if errors.As(err, &nf) {
		return nf.Entity, true
	}
	return "", false
}
