package dto

import (
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/service"
)

// RegisterRequest payload for new users. Profile fields are optional.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for PUT /api/users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ProfileUpdateRequest payload for PUT /api/users/me.
type ProfileUpdateRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// RolesRequest payload for role replacement.
type RolesRequest struct {
	Roles []string `json:"roles"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
}

// ProfileResponse describes the caller's account.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	OwnerID   string    `json:"ownerId,omitempty"`
	Roles     []string  `json:"roles"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserResponse is the admin view of an account.
type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Enabled  bool     `json:"enabled"`
	Roles    []string `json:"roles"`
}

// NewAuthResponse maps an auth result.
func NewAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.ExpiresAt,
		Username:  result.User.Username,
		Email:     result.User.Email,
		Roles:     domain.RoleNames(result.User.Roles),
	}
}

// NewProfileResponse maps a profile.
func NewProfileResponse(profile *service.Profile) ProfileResponse {
	user := profile.User
	resp := ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     domain.RoleNames(user.Roles),
		Enabled:   user.Enabled,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if owner := profile.Owner; owner != nil {
		resp.FirstName = owner.FirstName
		resp.LastName = owner.LastName
		resp.Phone = owner.Phone
		resp.Address = owner.Address
		resp.OwnerID = owner.ID
	}
	return resp
}

// NewUserResponse maps a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Enabled:  user.Enabled,
		Roles:    domain.RoleNames(user.Roles),
	}
}
