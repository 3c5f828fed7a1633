package books

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/internal/catalog"
	"github.com/novinbook/bookstore-backend/pkg/db"
	"github.com/novinbook/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// Service exposes the management CRUD over the catalog.
type Service interface {
	List(ctx context.Context, params catalog.ListParams) ([]catalog.BookDTO, error)
	Get(ctx context.Context, id uuid.UUID) (catalog.BookDTO, error)
	Create(ctx context.Context, req BookRequest) (catalog.BookDTO, error)
	Update(ctx context.Context, id uuid.UUID, req BookRequest) (catalog.BookDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteFiltered(ctx context.Context, scope string) (DeleteFilteredResponse, error)
}

// ServiceParams groups dependencies for the book management service.
// Covers is optional; without it listings carry the stored key only.
type ServiceParams struct {
	DB      *db.Client
	Filters *catalog.FilterMemory
	Covers  catalog.CoverSigner
}

type service struct {
	db      *db.Client
	filters *catalog.FilterMemory
	covers  catalog.CoverSigner
}

// NewService builds the book management service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.Filters == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filter memory is required")
	}
	return &service{db: params.DB, filters: params.Filters, covers: params.Covers}, nil
}

// List returns the filtered management listing.
func (s *service) List(ctx context.Context, params catalog.ListParams) ([]catalog.BookDTO, error) {
	repo := catalog.NewRepository(s.db.DB())
	books, err := repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	dtos := catalog.BooksFromModels(books)
	catalog.AttachCoverURLs(ctx, s.covers, dtos)
	return dtos, nil
}

// Get loads one book for the edit form.
func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.BookDTO, error) {
	repo := catalog.NewRepository(s.db.DB())
	book, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.BookDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return catalog.BookDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	dtos := []catalog.BookDTO{catalog.BookFromModel(book)}
	catalog.AttachCoverURLs(ctx, s.covers, dtos)
	return dtos[0], nil
}

// Create resolves taxonomy and inserts a new book.
func (s *service) Create(ctx context.Context, req BookRequest) (catalog.BookDTO, error) {
	return s.save(ctx, uuid.Nil, req)
}

// Update resolves taxonomy and applies an edit to an existing book.
func (s *service) Update(ctx context.Context, id uuid.UUID, req BookRequest) (catalog.BookDTO, error) {
	if id == uuid.Nil {
		return catalog.BookDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	return s.save(ctx, id, req)
}

func (s *service) save(ctx context.Context, id uuid.UUID, req BookRequest) (catalog.BookDTO, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return catalog.BookDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal number")
	}
	if price.IsNegative() {
		return catalog.BookDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	publishedAt, err := time.Parse(dateLayout, req.PublicationDate)
	if err != nil {
		return catalog.BookDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "publication date must be YYYY-MM-DD")
	}
	if req.AuthorID == nil && req.NewAuthor == "" {
		return catalog.BookDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "an author selection or a new author name is required")
	}

	var saved *models.Book
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := catalog.NewRepository(tx)
		taxonomy := catalog.NewTaxonomyRepository(tx)

		var book *models.Book
		if id == uuid.Nil {
			book = &models.Book{ID: uuid.New()}
		} else {
			existing, err := repo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
			}
			book = existing
		}

		book.Title = req.Title
		book.Description = req.Description
		book.Price = price
		book.Pages = req.Pages
		book.Quantity = req.Quantity
		book.PublicationDate = publishedAt
		if req.ImageKey != nil {
			book.ImageKey = req.ImageKey
		}

		if err := resolveTaxonomy(ctx, taxonomy, book, req); err != nil {
			return err
		}

		genres, err := collectGenres(ctx, tx, taxonomy, req)
		if err != nil {
			return err
		}

		persist := tx.WithContext(ctx).Omit("Genres", "Author", "Publisher")
		if id == uuid.Nil {
			err = persist.Create(book).Error
		} else {
			err = persist.Save(book).Error
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save book")
		}

		// Genre attachment is additive: links absent from this submission
		// are never removed.
		if len(genres) > 0 {
			if err := tx.WithContext(ctx).Model(book).Association("Genres").Append(genres); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach genres")
			}
		}

		reloaded, err := repo.FindByID(ctx, book.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload book")
		}
		saved = reloaded
		return nil
	})
	if err != nil {
		return catalog.BookDTO{}, err
	}
	return catalog.BookFromModel(saved), nil
}

func resolveTaxonomy(ctx context.Context, taxonomy *catalog.TaxonomyRepository, book *models.Book, req BookRequest) error {
	if req.NewAuthor != "" {
		firstName, lastName := splitAuthorName(req.NewAuthor)
		author, err := taxonomy.GetOrCreateAuthor(ctx, firstName, lastName)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve author")
		}
		book.AuthorID = &author.ID
		book.Author = nil
	} else if req.AuthorID != nil {
		book.AuthorID = req.AuthorID
		book.Author = nil
	}

	if req.NewPublisher != "" {
		publisher, err := taxonomy.GetOrCreatePublisher(ctx, req.NewPublisher)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve publisher")
		}
		book.PublisherID = &publisher.ID
		book.Publisher = nil
	} else if req.PublisherID != nil {
		book.PublisherID = req.PublisherID
		book.Publisher = nil
	}
	return nil
}

func collectGenres(ctx context.Context, tx *gorm.DB, taxonomy *catalog.TaxonomyRepository, req BookRequest) ([]models.Genre, error) {
	var genres []models.Genre
	if len(req.GenreIDs) > 0 {
		if err := tx.WithContext(ctx).Find(&genres, "id IN ?", req.GenreIDs).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load genres")
		}
		if len(genres) != len(req.GenreIDs) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown genre selection")
		}
	}
	if req.NewGenre != "" {
		genre, err := taxonomy.GetOrCreateGenre(ctx, req.NewGenre)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve genre")
		}
		genres = append(genres, *genre)
	}
	return genres, nil
}

// Delete removes one book and its genre/favorite links.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return deleteBooks(ctx, tx, []uuid.UUID{id})
	})
}

// DeleteFiltered recomputes the remembered filter set for scope and removes
// every matching book. The count is returned for user feedback.
func (s *service) DeleteFiltered(ctx context.Context, scope string) (DeleteFilteredResponse, error) {
	filters, err := s.filters.Recall(ctx, scope)
	if err != nil {
		return DeleteFilteredResponse{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recall filters")
	}
	params := filters.ToListParams()

	var deleted int
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		ids, err := catalog.NewRepository(tx).MatchIDs(ctx, params)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "match books")
		}
		deleted = len(ids)
		if deleted == 0 {
			return nil
		}
		return deleteBooks(ctx, tx, ids)
	})
	if err != nil {
		return DeleteFilteredResponse{}, err
	}
	return DeleteFilteredResponse{Deleted: deleted}, nil
}

func deleteBooks(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if err := tx.WithContext(ctx).Exec("DELETE FROM book_genres WHERE book_id IN ?", ids).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detach genres")
	}
	if err := tx.WithContext(ctx).Where("book_id IN ?", ids).Delete(&models.FavoriteBook{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorites")
	}
	result := tx.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Book{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete books")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	}
	return nil
}
