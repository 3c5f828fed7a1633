package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novinbook/bookstore-backend/api/middleware"
	"github.com/novinbook/bookstore-backend/api/responses"
	"github.com/novinbook/bookstore-backend/api/validators"
	"github.com/novinbook/bookstore-backend/internal/books"
	"github.com/novinbook/bookstore-backend/internal/catalog"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
	"github.com/novinbook/bookstore-backend/pkg/logger"
)

// ManagementList serves the authenticated management listing and remembers
// the filters the request carried for a later filtered delete.
func ManagementList(svc books.Service, memory *catalog.FilterMemory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == uuid.Nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		parsed, err := validators.ParseListingQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listing, err := svc.List(ctx, parsed.Params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		// Only remember filters the query string actually carried, and only
		// after the listing succeeded.
		if memory != nil && len(parsed.Present) > 0 {
			if err := memory.Remember(ctx, userID.String(), parsed.Present); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remember filters"))
				return
			}
		}

		responses.WriteSuccess(w, listing)
	}
}

// BookAdd creates a book from a management submission.
func BookAdd(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		payload, err := decodeBookRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		book, err := svc.Create(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, book)
	}
}

// BookEditFetch loads one book for the edit form.
func BookEditFetch(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := bookIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		book, err := svc.Get(ctx, bookID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, book)
	}
}

// BookEdit applies a management edit to one book.
func BookEdit(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := bookIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload, err := decodeBookRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		book, err := svc.Update(ctx, bookID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, book)
	}
}

// BookDelete removes one book.
func BookDelete(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := bookIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, bookID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// BookDeleteFiltered removes every book matching the caller's remembered
// filters and reports the count.
func BookDeleteFiltered(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == uuid.Nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		resp, err := svc.DeleteFiltered(ctx, userID.String())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func decodeBookRequest(r *http.Request) (books.BookRequest, error) {
	var payload books.BookRequest
	if err := validators.DecodeJSON(r, &payload); err != nil {
		return books.BookRequest{}, err
	}
	payload.Normalize()
	if err := validators.Check(&payload); err != nil {
		return books.BookRequest{}, err
	}
	return payload, nil
}

func bookIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	bookID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book id")
	}
	return bookID, nil
}
