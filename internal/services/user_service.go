package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/progress-tracker-api/internal/auth"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/validation"
	"gorm.io/gorm"
)

// UserService handles user administration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserInput is the request shape for creating and updating a user.
// Password is plain text and is hashed before it is stored.
type UserInput struct {
	Username patch.Field[string]      `json:"username"`
	Password patch.Field[string]      `json:"password"`
	Name     patch.Field[string]      `json:"name"`
	Role     patch.Field[models.Role] `json:"role"`
	Email    patch.Field[string]      `json:"email"`
	Avatar   patch.Field[string]      `json:"avatar"`
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("user", id, err)
	}
	return user, nil
}

// checkUnique fails with a conflict when username or email belongs to a user other than selfID.
func (s *UserService) checkUnique(ctx context.Context, selfID string, input UserInput) error {
	if input.Username.Present() {
		existing, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username.Value))
		switch {
		case err == nil && existing.ID != selfID:
			return ErrUsernameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	if input.Email.Present() && input.Email.Value != "" {
		existing, err := s.userRepo.FindByEmail(ctx, input.Email.Value)
		switch {
		case err == nil && existing.ID != selfID:
			return ErrEmailTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}
	}
	return nil
}

// Create validates input, rejects duplicate usernames and emails, and stores
// the user with a hashed password
func (s *UserService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	input.Email = nullIfEmpty(input.Email)

	if err := validation.Merge(
		requiredString("username", input.Username),
		requiredString("password", input.Password),
		requiredString("name", input.Name),
		requiredValue("role", input.Role),
		checkPassword(input.Password),
		checkRole(input.Role),
		checkEmail(input.Email),
	); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "", input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password.Value)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(input.Username.Value),
		PasswordHash: hash,
		Name:         input.Name.Value,
		Role:         input.Role.Value,
		Email:        input.Email.Ptr(),
		Avatar:       input.Avatar.Ptr(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update applies the supplied fields only. A supplied password is re-hashed.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*models.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	input.Email = nullIfEmpty(input.Email)

	if err := validation.Merge(
		notClearedString("username", input.Username),
		notClearedString("password", input.Password),
		notClearedString("name", input.Name),
		notCleared("role", input.Role),
		checkPassword(input.Password),
		checkRole(input.Role),
		checkEmail(input.Email),
	); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, id, input); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.SetMapped(p, "username", input.Username, strings.TrimSpace)
	patch.Set(p, "name", input.Name)
	patch.Set(p, "role", input.Role)
	patch.Set(p, "email", input.Email)
	patch.Set(p, "avatar", input.Avatar)
	if input.Password.Present() {
		hash, err := auth.HashPassword(input.Password.Value)
		if err != nil {
			return nil, err
		}
		p["password_hash"] = hash
	}

	if err := s.userRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a user who no longer owns any task
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	tasks, err := s.userRepo.CountTasks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if tasks > 0 {
		return &DependentsError{Entity: "user", ID: id, Dependents: "tasks", Count: tasks}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return lookupError("user", id, err)
	}
	return nil
}
