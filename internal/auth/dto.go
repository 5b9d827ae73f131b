package auth

import "github.com/angelmondragon/storefront/internal/users"

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest contains the payload required to create an account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response is returned by both signup and login. No token is issued.
type Response struct {
	User    *users.UserDTO `json:"user"`
	Message string         `json:"message"`
}
