package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
	redisclient "github.com/novinbook/bookstore-backend/pkg/redis"
)

// MemoryFilterStore is an in-memory FilterStore/FilterKeyer for tests.
type MemoryFilterStore struct {
	Values map[string]string
}

// NewMemoryFilterStore builds an empty in-memory store.
func NewMemoryFilterStore() *MemoryFilterStore {
	return &MemoryFilterStore{Values: map[string]string{}}
}

func (m *MemoryFilterStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.Values[key] = fmt.Sprintf("%v", value)
	return nil
}

func (m *MemoryFilterStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.Values[key]
	if !ok {
		return "", redisclient.Nil
	}
	return value, nil
}

func (m *MemoryFilterStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.Values, key)
	}
	return nil
}

func (m *MemoryFilterStore) FilterKey(scope, field string) string {
	return "bs:filter:" + scope + ":" + field
}

// SetupTestDB opens an in-memory sqlite database with the catalog schema.
// Shared across packages that need seeded books in their tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS authors (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  bio TEXT NOT NULL,
  birth_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS publishers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS genres (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL,
  pages INTEGER NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  publication_date DATETIME NOT NULL,
  image_key TEXT,
  author_id TEXT NOT NULL,
  publisher_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS book_genres (
  book_id TEXT NOT NULL,
  genre_id TEXT NOT NULL,
  PRIMARY KEY (book_id, genre_id)
);`,
		`CREATE TABLE IF NOT EXISTS favorite_books (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  book_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, book_id)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	// Shared-cache sqlite keeps rows across tests in the same binary.
	for _, table := range []string{"favorite_books", "book_genres", "books", "genres", "publishers", "authors", "user_profiles", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

// NewTestAuthor seeds an author row.
func NewTestAuthor(t *testing.T, db *gorm.DB, firstName, lastName string) *models.Author {
	t.Helper()

	author := &models.Author{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Bio:       "bio",
		BirthDate: time.Date(1970, time.May, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(author).Error)
	return author
}

// NewTestPublisher seeds a publisher row.
func NewTestPublisher(t *testing.T, db *gorm.DB, name string) *models.Publisher {
	t.Helper()

	publisher := &models.Publisher{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(publisher).Error)
	return publisher
}

// NewTestGenre seeds a genre row.
func NewTestGenre(t *testing.T, db *gorm.DB, name string) *models.Genre {
	t.Helper()

	genre := &models.Genre{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

// TestBookSpec describes a book seed.
type TestBookSpec struct {
	Title       string
	Description string
	Price       string
	Published   time.Time
	Author      *models.Author
	Publisher   *models.Publisher
	Genres      []*models.Genre
}

// NewTestBook seeds a book row plus its genre links.
func NewTestBook(t *testing.T, db *gorm.DB, spec TestBookSpec) *models.Book {
	t.Helper()

	price := decimal.Zero
	if spec.Price != "" {
		parsed, err := decimal.NewFromString(spec.Price)
		require.NoError(t, err)
		price = parsed
	}
	published := spec.Published
	if published.IsZero() {
		published = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	book := &models.Book{
		ID:              uuid.New(),
		Title:           spec.Title,
		Description:     spec.Description,
		Price:           price,
		Pages:           100,
		Quantity:        5,
		PublicationDate: published,
	}
	if spec.Author != nil {
		book.AuthorID = &spec.Author.ID
	} else {
		// author_id is NOT NULL; seeds that don't care get a shared
		// fallback author whose name never collides with search terms.
		fallback := &models.Author{}
		require.NoError(t, db.
			Where(&models.Author{FirstName: "Anonymous", LastName: "Scribe"}).
			Attrs(models.Author{
				ID:        uuid.New(),
				Bio:       "Biography pending.",
				BirthDate: time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC),
			}).
			FirstOrCreate(fallback).Error)
		book.AuthorID = &fallback.ID
	}
	if spec.Publisher != nil {
		book.PublisherID = &spec.Publisher.ID
	}
	require.NoError(t, db.Omit("Genres").Create(book).Error)

	for _, genre := range spec.Genres {
		require.NoError(t, db.Exec(
			"INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)",
			book.ID, genre.ID,
		).Error)
	}
	return book
}
