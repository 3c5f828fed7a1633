package books

import (
	"strings"

	"github.com/google/uuid"
)

// BookRequest carries a book add/edit submission. Taxonomy can be chosen
// from existing records by ID or entered as free text; free text wins when
// both are present. Price travels as a string and is parsed to a decimal in
// the service so the wire never sees binary floats.
type BookRequest struct {
	Title           string      `json:"title" validate:"required,max=100"`
	Description     string      `json:"description" validate:"required"`
	Price           string      `json:"price" validate:"required"`
	Pages           int         `json:"pages" validate:"gte=0"`
	Quantity        int         `json:"quantity" validate:"gte=0"`
	PublicationDate string      `json:"publication_date" validate:"required,datetime=2006-01-02"`
	ImageKey        *string     `json:"image_key,omitempty"`
	AuthorID        *uuid.UUID  `json:"author_id,omitempty"`
	PublisherID     *uuid.UUID  `json:"publisher_id,omitempty"`
	GenreIDs        []uuid.UUID `json:"genre_ids,omitempty"`
	NewAuthor       string      `json:"new_author" validate:"omitempty,max=200"`
	NewPublisher    string      `json:"new_publisher" validate:"omitempty,max=200"`
	NewGenre        string      `json:"new_genre" validate:"omitempty,min=2,max=100"`
}

// Normalize trims the free-text taxonomy fields before validation so length
// rules apply to the meaningful characters.
func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.NewAuthor = strings.TrimSpace(r.NewAuthor)
	r.NewPublisher = strings.TrimSpace(r.NewPublisher)
	r.NewGenre = strings.TrimSpace(r.NewGenre)
}

// DeleteFilteredResponse reports how many books the remembered filters
// removed.
type DeleteFilteredResponse struct {
	Deleted int `json:"deleted"`
}
