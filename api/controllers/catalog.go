package controllers

import (
	"net/http"

	"github.com/novinbook/bookstore-backend/api/responses"
	"github.com/novinbook/bookstore-backend/api/validators"
	"github.com/novinbook/bookstore-backend/internal/books"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
	"github.com/novinbook/bookstore-backend/pkg/logger"
)

// CatalogList serves the public shop listing with search/filter/sort.
func CatalogList(svc books.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
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
		responses.WriteSuccess(w, listing)
	}
}
