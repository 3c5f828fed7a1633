package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is created lazily on first profile access.
type UserProfile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	Address   string    `gorm:"column:address;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
