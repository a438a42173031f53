package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/progress-tracker-api/internal/validation"
	"gorm.io/gorm"
)

var (
	// ErrValidation is matched by every *validation.Error.
	ErrValidation = validation.ErrInvalid

	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrConflict         = errors.New("conflict")
	ErrHasDependents    = errors.New("record is still referenced")

	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrEmailTaken         = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NotFoundError reports a missing row addressed by id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReferenceError reports a foreign key pointing at a row that does not exist.
type ReferenceError struct {
	Field  string
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s referenced by %s does not exist", e.Entity, e.ID, e.Field)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference || target == ErrNotFound
}

// DependentsError reports a delete refused because other rows still point at the target.
type DependentsError struct {
	Entity     string
	ID         string
	Dependents string
	Count      int64
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%s %s still has %d %s", e.Entity, e.ID, e.Count, e.Dependents)
}

func (e *DependentsError) Is(target error) bool {
	return target == ErrHasDependents
}

// lookupError maps gorm.ErrRecordNotFound to a *NotFoundError and wraps anything else.
func lookupError(entity, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("failed to find %s: %w", entity, err)
}
