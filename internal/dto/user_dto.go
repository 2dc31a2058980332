package dto

import (
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Bio       string      `json:"bio,omitempty"`
	Age       int         `json:"age,omitempty"`
	Theme     string      `json:"theme,omitempty"`
	IsBlocked bool        `json:"is_blocked"`
	Followers []uuid.UUID `json:"followers"`
	Following []uuid.UUID `json:"following"`
}

func NewUserResponse(u *models.User, followers, following []uuid.UUID) UserResponse {
	if followers == nil {
		followers = []uuid.UUID{}
	}
	if following == nil {
		following = []uuid.UUID{}
	}
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Age:       u.Age,
		Theme:     u.Theme,
		IsBlocked: u.IsBlocked,
		Followers: followers,
		Following: following,
	}
}

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Theme     *string `json:"theme,omitempty"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type BlockUserRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type BlockUserResponse struct {
	BlockID string `json:"block_id"`
}

type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}
