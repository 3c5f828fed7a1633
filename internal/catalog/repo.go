package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
)

// searchClause matches a single needle against every text surface a shopper
// can see: title, author first/last name, description, and publisher name.
const searchClause = `(LOWER(books.title) LIKE ? OR LOWER(authors.first_name) LIKE ? OR LOWER(authors.last_name) LIKE ? OR LOWER(books.description) LIKE ? OR LOWER(publishers.name) LIKE ?)`

const genreExistsClause = `EXISTS (SELECT 1 FROM book_genres bg JOIN genres g ON g.id = bg.genre_id WHERE bg.book_id = books.id AND g.name = ?)`

// Repository runs catalog queries against the book tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List applies the composed filters and returns matching books with their
// author, publisher, and genres preloaded.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.Book, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Book{}), params).
		Select("books.*").
		Order(params.OrderClause()).
		Preload("Author").
		Preload("Publisher").
		Preload("Genres")

	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// MatchIDs returns only the IDs of books the filters select, in no
// particular order. Used by the filtered bulk delete.
func (r *Repository) MatchIDs(ctx context.Context, params ListParams) ([]uuid.UUID, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Book{}), params)

	var ids []uuid.UUID
	if err := query.Pluck("books.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FindByID loads a single book with its relations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Publisher").
		Preload("Genres").
		First(&book, "books.id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) applyFilters(query *gorm.DB, params ListParams) *gorm.DB {
	query = query.
		Joins("LEFT JOIN authors ON authors.id = books.author_id").
		Joins("LEFT JOIN publishers ON publishers.id = books.publisher_id")

	if params.HasSearch() {
		needle := "%" + strings.ToLower(strings.TrimSpace(params.Search)) + "%"
		query = query.Where(searchClause, needle, needle, needle, needle, needle)
	}
	if params.MinPrice != nil {
		query = query.Where("books.price >= ?", params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("books.price <= ?", params.MaxPrice)
	}
	if params.HasGenre() {
		query = query.Where(genreExistsClause, strings.TrimSpace(params.Genre))
	}
	return query
}
