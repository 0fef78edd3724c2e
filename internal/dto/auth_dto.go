package dto

import (
	"time"

	"notevault-be/internal/entity"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=3"`
}

type RegisterResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	User        UserProfileResponse `json:"user"`
}

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
}

// NewUserProfileResponse reads the display fields through the identity so the
// same shape serves both store-backed and provider-backed profiles.
func NewUserProfileResponse(id entity.Identity, user *entity.User) UserProfileResponse {
	return UserProfileResponse{
		Id:        user.Id,
		Email:     id.Email(),
		FullName:  id.DisplayName(),
		Role:      string(user.Role),
		Status:    string(user.Status),
		AvatarURL: id.AvatarURL(),
		CreatedAt: user.CreatedAt,
	}
}
