package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sort keys accepted by the shop listing. Anything else falls back to the
// title ordering.
const (
	SortTitle     = "title"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDateAsc   = "date_asc"
	SortDateDesc  = "date_desc"
)

// ListParams captures the live listing filters. Nil price bounds mean
// unbounded; an empty search or genre applies no constraint.
type ListParams struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Genre    string
	Sort     string
}

var sortClauses = map[string]string{
	SortTitle:     "books.title ASC",
	SortPriceAsc:  "books.price ASC",
	SortPriceDesc: "books.price DESC",
	SortDateAsc:   "books.publication_date ASC",
	SortDateDesc:  "books.publication_date DESC",
}

// OrderClause maps the sort key to a deterministic ORDER BY. The book ID is
// always the tie breaker so pagination stays stable.
func (p ListParams) OrderClause() string {
	clause, ok := sortClauses[strings.TrimSpace(p.Sort)]
	if !ok {
		clause = sortClauses[SortTitle]
	}
	return clause + ", books.id ASC"
}

// HasSearch reports whether the free-text search applies.
func (p ListParams) HasSearch() bool {
	return strings.TrimSpace(p.Search) != ""
}

// HasGenre reports whether the genre filter applies.
func (p ListParams) HasGenre() bool {
	return strings.TrimSpace(p.Genre) != ""
}
