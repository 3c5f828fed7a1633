package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// AuthorDTO is the public projection of an author.
type AuthorDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// PublisherDTO is the public projection of a publisher.
type PublisherDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GenreDTO is the public projection of a genre.
type GenreDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookDTO is the public projection of a book. Price is serialized as a
// string to avoid float rounding on the wire. ImageURL is only set when the
// caller resolved a presigned download URL for the stored key.
type BookDTO struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Price           string        `json:"price"`
	Pages           int           `json:"pages"`
	Quantity        int           `json:"quantity"`
	PublicationDate string        `json:"publication_date"`
	ImageKey        *string       `json:"image_key,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	Author          *AuthorDTO    `json:"author,omitempty"`
	Publisher       *PublisherDTO `json:"publisher,omitempty"`
	Genres          []GenreDTO    `json:"genres"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BookFromModel maps a book row and its preloaded relations to a DTO.
func BookFromModel(book *models.Book) BookDTO {
	dto := BookDTO{
		ID:              book.ID,
		Title:           book.Title,
		Description:     book.Description,
		Price:           book.Price.StringFixed(3),
		Pages:           book.Pages,
		Quantity:        book.Quantity,
		PublicationDate: book.PublicationDate.Format(dateLayout),
		ImageKey:        book.ImageKey,
		Genres:          make([]GenreDTO, 0, len(book.Genres)),
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
	if book.Author != nil {
		dto.Author = &AuthorDTO{
			ID:        book.Author.ID,
			FirstName: book.Author.FirstName,
			LastName:  book.Author.LastName,
		}
	}
	if book.Publisher != nil {
		dto.Publisher = &PublisherDTO{ID: book.Publisher.ID, Name: book.Publisher.Name}
	}
	for _, genre := range book.Genres {
		dto.Genres = append(dto.Genres, GenreDTO{ID: genre.ID, Name: genre.Name})
	}
	return dto
}

// BooksFromModels maps a slice of book rows.
func BooksFromModels(books []models.Book) []BookDTO {
	dtos := make([]BookDTO, 0, len(books))
	for i := range books {
		dtos = append(dtos, BookFromModel(&books[i]))
	}
	return dtos
}

// CoverSigner resolves a stored cover key to a temporary download URL.
type CoverSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// AttachCoverURLs fills ImageURL for every DTO carrying a cover key. A
// failed presign leaves that book without a URL rather than failing the
// whole listing.
func AttachCoverURLs(ctx context.Context, signer CoverSigner, dtos []BookDTO) {
	if signer == nil {
		return
	}
	for i := range dtos {
		if dtos[i].ImageKey == nil || *dtos[i].ImageKey == "" {
			continue
		}
		url, err := signer.PresignGet(ctx, *dtos[i].ImageKey)
		if err != nil {
			continue
		}
		dtos[i].ImageURL = url
	}
}
