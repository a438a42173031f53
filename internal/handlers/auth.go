package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/constants"
	"github.com/yukikurage/progress-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/progress-tracker-api/internal/errors"
	"github.com/yukikurage/progress-tracker-api/internal/middleware"
	"github.com/yukikurage/progress-tracker-api/internal/services"
	"github.com/yukikurage/progress-tracker-api/pkg/logger"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService   *services.AuthService
	adminUsername string
	adminPassword string
}

// NewAuthHandler creates a new AuthHandler. The admin credentials are used by
// Init when no administrator exists yet.
func NewAuthHandler(authService *services.AuthService, adminUsername, adminPassword string) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Login authenticates a user, returns a bearer token and keeps it in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, result.Token)
	if err := session.Save(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		User:    dto.ToUserDTO(*result.User),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	apierrors.SuccessMessage(c, http.StatusOK, "Logged out successfully")
}

// Init creates the default administrator when none exists.
func (h *AuthHandler) Init(c *gin.Context) {
	_, created, err := h.authService.EnsureDefaultAdmin(c.Request.Context(), h.adminUsername, h.adminPassword)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !created {
		apierrors.SuccessMessage(c, http.StatusOK, "Admin user already exists")
		return
	}

	log := logger.Get()
	log.Info().Str("username", h.adminUsername).Msg("created default admin user")
	apierrors.SuccessMessage(c, http.StatusCreated, "Admin user created")
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, "user", dto.ToUserDTO(*user))
}
