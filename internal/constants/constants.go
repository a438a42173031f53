package constants

import "time"

// Context keys set by the auth middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// Session
const (
	SessionCookieName = "tracker_session"
	SessionKeyToken   = "token"
	SessionMaxAge     = 86400 * 30
)

// Credentials
const (
	MinPasswordLength = 6
	BcryptCost        = 10
	TokenTTL          = 30 * 24 * time.Hour
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Progress bounds
const (
	MinProgress = 0
	MaxProgress = 100
)
