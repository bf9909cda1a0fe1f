package dto

import (
	"time"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
)

// RegisterRequest wraps the new account under "user".
type RegisterRequest struct {
	User *RegisterUser `json:"user"`
}

// RegisterUser payload for new users.
type RegisterUser struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	ConfPassword string `json:"confPassword"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public view of an account. The password hash is never exposed.
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	AccessType domain.AccessType `json:"accessType"`
	State      domain.UserState  `json:"state"`
}

// PublicUser projects an account.
func PublicUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, AccessType: u.AccessType, State: u.State}
}
