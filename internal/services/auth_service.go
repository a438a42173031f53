package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/progress-tracker-api/internal/auth"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo    repository.UserRepository
	userService *UserService
	tokens      *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		userService: NewUserService(userRepo),
		tokens:      tokens,
	}
}

// LoginResult carries the signed token and the user it was issued for.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// EnsureDefaultAdmin creates an admin account when none exists. It reports
// whether a user was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) (*models.User, bool, error) {
	admins, err := s.userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count admins: %w", err)
	}
	if admins > 0 {
		return nil, false, nil
	}

	user, err := s.userService.Create(ctx, UserInput{
		Username: patch.Of(username),
		Password: patch.Of(password),
		Name:     patch.Of("Administrator"),
		Role:     patch.Of(models.RoleAdmin),
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userService.Get(ctx, id)
}
