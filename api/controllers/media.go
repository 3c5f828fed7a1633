package controllers

import (
	"net/http"

	"github.com/novinbook/bookstore-backend/api/responses"
	"github.com/novinbook/bookstore-backend/api/validators"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
	"github.com/novinbook/bookstore-backend/pkg/logger"
	"github.com/novinbook/bookstore-backend/pkg/storage"
)

type presignPayload struct {
	Filename string `json:"filename" validate:"required,max=255"`
}

type presignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// BookImagePresign allocates an object key for a cover image and returns a
// URL the client can PUT the file to. The returned key goes into the book
// payload as image_key.
func BookImagePresign(store storage.ObjectStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storage unavailable"))
			return
		}

		var payload presignPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		key, err := storage.NewCoverKey(payload.Filename)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		uploadURL, err := store.PresignPut(ctx, key)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, presignResponse{Key: key, UploadURL: uploadURL})
	}
}
