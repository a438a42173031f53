package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/progress-tracker-api/internal/constants"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"github.com/yukikurage/progress-tracker-api/internal/validation"
)

// requiredString rejects an absent, null or blank string on create.
func requiredString(field string, f patch.Field[string]) *validation.Error {
	if !f.Present() || strings.TrimSpace(f.Value) == "" {
		return validation.Missing(field)
	}
	return nil
}

// requiredValue rejects an absent or null value on create.
func requiredValue[T any](field string, f patch.Field[T]) *validation.Error {
	if !f.Present() {
		return validation.Missing(field)
	}
	return nil
}

// notClearedString rejects null or blank for a required column on update.
// Absent is fine.
func notClearedString(field string, f patch.Field[string]) *validation.Error {
	if f.Set && (f.Null || strings.TrimSpace(f.Value) == "") {
		return validation.New(field, "%s cannot be empty", field)
	}
	return nil
}

func notCleared[T any](field string, f patch.Field[T]) *validation.Error {
	if f.Set && f.Null {
		return validation.New(field, "%s cannot be null", field)
	}
	return nil
}

func checkProgress(f patch.Field[int]) *validation.Error {
	if !f.Present() {
		return nil
	}
	return validation.Var("progress", f.Value, fmt.Sprintf("min=%d,max=%d", constants.MinProgress, constants.MaxProgress))
}

func checkStatus(f patch.Field[models.Status]) *validation.Error {
	if !f.Present() {
		return nil
	}
	return validation.Var("status", string(f.Value), models.StatusOneOf)
}

func checkPriority(f patch.Field[models.Priority]) *validation.Error {
	if !f.Present() {
		return nil
	}
	return validation.Var("priority", string(f.Value), models.PriorityOneOf)
}

func checkRole(f patch.Field[models.Role]) *validation.Error {
	if !f.Present() {
		return nil
	}
	return validation.Var("role", string(f.Value), models.RoleOneOf)
}

func checkEmail(f patch.Field[string]) *validation.Error {
	if !f.Present() || f.Value == "" {
		return nil
	}
	return validation.Var("email", f.Value, "email")
}

func checkPassword(f patch.Field[string]) *validation.Error {
	if !f.Present() {
		return nil
	}
	return validation.Var("password", f.Value, fmt.Sprintf("min=%d", constants.MinPasswordLength))
}

// existsFunc reports whether a row with id exists.
type existsFunc func(ctx context.Context, id string) (bool, error)

// checkReference verifies that a supplied, non-null foreign key points at an existing row.
func checkReference(ctx context.Context, field, entity string, f patch.Field[string], exists existsFunc) error {
	if !f.Present() || f.Value == "" {
		return nil
	}
	ok, err := exists(ctx, f.Value)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", field, err)
	}
	if !ok {
		return &ReferenceError{Field: field, Entity: entity, ID: f.Value}
	}
	return nil
}

// nullIfEmpty turns "" into an explicit null for nullable foreign keys.
func nullIfEmpty(f patch.Field[string]) patch.Field[string] {
	if f.Present() && f.Value == "" {
		return patch.Null[string]()
	}
	return f
}
