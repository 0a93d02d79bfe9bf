package dto

import "time"

// LoginRequest represents the request body for user authentication
// @Description Credentials for obtaining an access token
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful authentication response
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RefreshResponse represents a token refresh response
type RefreshResponse struct {
	Token string `json:"token"`
}
