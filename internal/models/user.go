package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values for User.Role.
const (
	RoleUser     = "user"
	RoleResolver = "resolver"
	RoleAdmin    = "admin"
)

// ValidRoles is the closed set of assignable roles.
var ValidRoles = map[string]bool{
	RoleUser:     true,
	RoleResolver: true,
	RoleAdmin:    true,
}

// User is a platform account. Users are never deleted; blocking flags the
// account and triggers the content cascade in the moderation service.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'user'" json:"role"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url,omitempty"`
	Bio       string    `gorm:"size:500" json:"bio,omitempty"`
	Age       int       `json:"age,omitempty"`
	Theme     string    `gorm:"size:10" json:"theme,omitempty"`
	APIKey    string    `gorm:"size:64;uniqueIndex" json:"-"`
	IsBlocked bool      `gorm:"not null;default:false" json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleResolver || u.Role == RoleAdmin
}
