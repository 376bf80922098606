// Package domain holds what every catalog package shares: the sentinels that
// repositories return and the page container produced by paginated reads.
package domain

import (
	"errors"
	"fmt"

	"catalog/internal/core/apperror"
)

// Repository sentinels. Repositories wrap them with %w and services translate
// them into apperror values; nothing above the service layer compares them.
var (
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when a delete is rejected because other rows reference the target.
	ErrInUse = errors.New("referenced by other rows")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate value")

	// ErrInvalidReference is returned when a write points at a brand or type that does not exist.
	ErrInvalidReference = errors.New("referenced row does not exist")

	// ErrInvalidValue is returned when a check constraint rejects a write.
	ErrInvalidValue = errors.New("value rejected by check constraint")
)

// DuplicateError names the column and value a unique constraint rejected.
// It matches ErrDuplicate under errors.Is.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %q", e.Field, e.Value)
}

// Is reports ErrDuplicate as equal.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Translate maps a repository error for the entity with the given id onto the
// apperror taxonomy. Errors that already are AppErrors pass through; unknown
// errors become internal errors.
func Translate(err error, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case apperror.IsAppError(err):
		return err
	case errors.Is(err, ErrNotFound):
		return apperror.NewNotFound(entity, id).WithCause(err)
	case errors.Is(err, ErrInUse):
		return apperror.NewInUse(entity, id).WithCause(err)
	case errors.Is(err, ErrDuplicate):
		field, value := "name", fmt.Sprint(id)
		var dup *DuplicateError
		if errors.As(err, &dup) && dup.Field != "" {
			field, value = dup.Field, dup.Value
		}
		return apperror.NewDuplicate(entity, field, value).WithCause(err)
	case errors.Is(err, ErrInvalidReference):
		return apperror.NewValidation("referenced catalog brand or type does not exist").
			WithDetail("entity", entity).
			WithCause(err)
	case errors.Is(err, ErrInvalidValue):
		return apperror.NewValidation(fmt.Sprintf("%s has a value outside the allowed range", entity)).
			WithDetail("entity", entity).
			WithCause(err)
	default:
		return apperror.NewInternal(err).WithDetail("entity", entity)
	}
}
