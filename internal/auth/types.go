package auth

import (
	"github.com/novinbook/bookstore-backend/internal/users"
)

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest carries the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token plus the rotating refresh token.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         users.UserDTO `json:"user"`
}

// RegisterResponse confirms the created account.
type RegisterResponse struct {
	User users.UserDTO `json:"user"`
}
