package auth

import (
	"github.com/marcheplus/marcheplus-backend/internal/users"
)

// RegisterRequest contains the payload for self sign-up.
type RegisterRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Phone        string  `json:"phone" validate:"required,min=6,max=32"`
	Password     string  `json:"password" validate:"required,min=6"`
	Role         string  `json:"role" validate:"required,oneof=merchant supplier"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=160"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=160"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the bearer token and the authenticated user.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
