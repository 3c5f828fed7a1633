package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/novinbook/bookstore-backend/api/middleware"
	"github.com/novinbook/bookstore-backend/api/responses"
	"github.com/novinbook/bookstore-backend/api/validators"
	"github.com/novinbook/bookstore-backend/internal/favorites"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
	"github.com/novinbook/bookstore-backend/pkg/logger"
)

type toggleFavoritePayload struct {
	BookID string `json:"book_id" validate:"required"`
}

// FavoritesList returns the caller's favorited books.
func FavoritesList(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == uuid.Nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		books, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, books)
	}
}

// FavoritesToggle flips the caller's favorite state for one book.
func FavoritesToggle(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == uuid.Nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		var payload toggleFavoritePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		bookID, err := uuid.Parse(strings.TrimSpace(payload.BookID))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book id"))
			return
		}

		resp, err := svc.Toggle(ctx, userID, bookID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
