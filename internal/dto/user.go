package dto

import (
	"github.com/yukikurage/progress-tracker-api/internal/models"
)

// UserDTO represents the authenticated user in API responses
type UserDTO struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	Email    *string     `json:"email,omitempty"`
	Avatar   *string     `json:"avatar,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		Email:    user.Email,
		Avatar:   user.Avatar,
	}
}
