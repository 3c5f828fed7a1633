package models

import (
	"time"

	"github.com/google/uuid"
)

// Author identity is not unique by name; (first_name, last_name) is only the
// lookup key used when resolving free-text author entries on book saves.
type Author struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName string    `gorm:"column:first_name;not null;index:authors_name_idx"`
	LastName  string    `gorm:"column:last_name;not null;index:authors_name_idx"`
	Bio       string    `gorm:"column:bio;not null"`
	BirthDate time.Time `gorm:"column:birth_date;type:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
