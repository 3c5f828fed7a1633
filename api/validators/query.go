package validators

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/novinbook/bookstore-backend/internal/catalog"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

// ListingQuery is the parsed form of the catalog filter parameters plus the
// raw values of the fields the request actually carried, for filter memory.
type ListingQuery struct {
	Params  catalog.ListParams
	Present map[string]string
}

// ParseListingQuery reads search/min_price/max_price/genre/sort from the
// query string. Non-numeric price bounds fail validation instead of being
// silently dropped.
func ParseListingQuery(r *http.Request) (ListingQuery, error) {
	query := r.URL.Query()

	var search, minPrice, maxPrice, genre *string
	if query.Has("search") {
		v := strings.TrimSpace(query.Get("search"))
		search = &v
	}
	if query.Has("min_price") {
		v := strings.TrimSpace(query.Get("min_price"))
		minPrice = &v
	}
	if query.Has("max_price") {
		v := strings.TrimSpace(query.Get("max_price"))
		maxPrice = &v
	}
	if query.Has("genre") {
		v := strings.TrimSpace(query.Get("genre"))
		genre = &v
	}

	params := catalog.ListParams{Sort: strings.TrimSpace(query.Get("sort"))}
	if search != nil {
		params.Search = *search
	}
	if genre != nil {
		params.Genre = *genre
	}

	if minPrice != nil && *minPrice != "" {
		value, err := decimal.NewFromString(*minPrice)
		if err != nil {
			return ListingQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be a decimal number").WithDetails(map[string]any{"field": "min_price"})
		}
		params.MinPrice = &value
	}
	if maxPrice != nil && *maxPrice != "" {
		value, err := decimal.NewFromString(*maxPrice)
		if err != nil {
			return ListingQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be a decimal number").WithDetails(map[string]any{"field": "max_price"})
		}
		params.MaxPrice = &value
	}

	return ListingQuery{
		Params:  params,
		Present: catalog.Snapshot(search, minPrice, maxPrice, genre),
	}, nil
}
