package models

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteBook links a user to a favorited book. Row existence means
// "favorited"; the composite unique index backs the toggle semantics.
type FavoriteBook struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:favorite_books_user_id_idx;uniqueIndex:favorite_books_user_book_key"`
	BookID    uuid.UUID `gorm:"column:book_id;type:uuid;not null;index:favorite_books_book_id_idx;uniqueIndex:favorite_books_user_book_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
