package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
)

// Repository encapsulates favorite-book persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether the user has favorited the book.
func (r *Repository) Exists(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var favorite models.FavoriteBook
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&favorite).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add inserts the favorite link.
func (r *Repository) Add(ctx context.Context, userID, bookID uuid.UUID) error {
	favorite := models.FavoriteBook{
		ID:     uuid.New(),
		UserID: userID,
		BookID: bookID,
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

// Remove deletes the favorite link if present.
func (r *Repository) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.FavoriteBook{}).
		Error
}

// ListBooks returns the user's favorited books with relations preloaded,
// most recently favorited first.
func (r *Repository) ListBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN favorite_books fb ON fb.book_id = books.id").
		Where("fb.user_id = ?", userID).
		Order("fb.created_at DESC, books.id ASC").
		Preload("Author").
		Preload("Publisher").
		Preload("Genres").
		Find(&books).
		Error
	if err != nil {
		return nil, err
	}
	return books, nil
}
