package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
)

// UserDTO is the public projection of a user row.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProfileDTO is the public projection of a profile row.
type ProfileDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromModel maps a user row to its DTO.
func UserFromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ProfileFromModel maps a profile row to its DTO.
func ProfileFromModel(profile *models.UserProfile) ProfileDTO {
	return ProfileDTO{
		UserID:    profile.UserID,
		Phone:     profile.Phone,
		Address:   profile.Address,
		UpdatedAt: profile.UpdatedAt,
	}
}
