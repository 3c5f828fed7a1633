package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/internal/catalog"
	"github.com/novinbook/bookstore-backend/pkg/db"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

// Toggle results reported back to the client.
const (
	StatusAdded   = "added"
	StatusRemoved = "removed"
)

// ToggleResponse reports the membership flip outcome.
type ToggleResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Service exposes the favorites ledger.
type Service interface {
	Toggle(ctx context.Context, userID, bookID uuid.UUID) (ToggleResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]catalog.BookDTO, error)
}

// ServiceParams groups dependencies for the favorites service. Covers is
// optional; without it listings carry the stored key only.
type ServiceParams struct {
	DB     *db.Client
	Covers catalog.CoverSigner
}

type service struct {
	db     *db.Client
	covers catalog.CoverSigner
}

// NewService builds the favorites service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{db: params.DB, covers: params.Covers}, nil
}

// Toggle flips the (user, book) favorite membership. Each call changes state
// exactly once: absent creates it, present removes it.
func (s *service) Toggle(ctx context.Context, userID, bookID uuid.UUID) (ToggleResponse, error) {
	if userID == uuid.Nil {
		return ToggleResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if bookID == uuid.Nil {
		return ToggleResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}

	var response ToggleResponse
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := catalog.NewRepository(tx).FindByID(ctx, bookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
		}

		repo := NewRepository(tx)
		favorited, err := repo.Exists(ctx, userID, bookID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
		}

		if favorited {
			if err := repo.Remove(ctx, userID, bookID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
			}
			response = ToggleResponse{Status: StatusRemoved, Message: "book removed from favorites"}
			return nil
		}

		if err := repo.Add(ctx, userID, bookID); err != nil {
			if db.IsUniqueViolation(err, "") {
				// A concurrent toggle won the insert; treat it as already added.
				response = ToggleResponse{Status: StatusAdded, Message: "book added to favorites"}
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
		}
		response = ToggleResponse{Status: StatusAdded, Message: "book added to favorites"}
		return nil
	})
	if err != nil {
		return ToggleResponse{}, err
	}
	return response, nil
}

// List returns the user's favorited books.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]catalog.BookDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	books, err := NewRepository(s.db.DB()).ListBooks(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	dtos := catalog.BooksFromModels(books)
	catalog.AttachCoverURLs(ctx, s.covers, dtos)
	return dtos, nil
}
