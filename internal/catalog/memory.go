package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/novinbook/bookstore-backend/pkg/config"
	redisclient "github.com/novinbook/bookstore-backend/pkg/redis"
)

// Remembered filter fields. Each field is stored under its own key so a
// request that only carries one of them refreshes just that one.
const (
	fieldSearch   = "search"
	fieldMinPrice = "min_price"
	fieldMaxPrice = "max_price"
	fieldGenre    = "genre"
)

// FilterStore is the key-value surface the memory needs.
type FilterStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// FilterKeyer namespaces remembered fields per scope.
type FilterKeyer interface {
	FilterKey(scope, field string) string
}

// FilterMemory persists the management listing's last-used filters per user
// so the filtered bulk delete operates on what the admin last saw.
type FilterMemory struct {
	store FilterStore
	keyer FilterKeyer
	ttl   time.Duration
}

// RememberedFilters is the raw snapshot read back from storage. Empty
// strings mean the field was never remembered.
type RememberedFilters struct {
	Search   string
	MinPrice string
	MaxPrice string
	Genre    string
}

// NewFilterMemory builds a filter memory backed by Redis.
func NewFilterMemory(client *redisclient.Client, cfg config.FilterConfig) (*FilterMemory, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	ttl := cfg.MemoryTTL
	if ttl <= 0 {
		return nil, errors.New("filter memory ttl must be positive")
	}
	return &FilterMemory{store: client, keyer: client, ttl: ttl}, nil
}

// NewFilterMemoryWithBackend wires an explicit store, mainly for tests.
func NewFilterMemoryWithBackend(store FilterStore, keyer FilterKeyer, ttl time.Duration) *FilterMemory {
	return &FilterMemory{store: store, keyer: keyer, ttl: ttl}
}

// Remember stores each filter field the request actually carried. Fields the
// request omitted keep whatever value was remembered before. The provided
// map uses the raw query values keyed by field presence.
func (m *FilterMemory) Remember(ctx context.Context, scope string, present map[string]string) error {
	for field, value := range present {
		if err := m.store.Set(ctx, m.keyer.FilterKey(scope, field), value, m.ttl); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot builds the field map Remember expects from listing params.
// Only fields the request provided with a non-empty value are included: a
// cleared form field must not overwrite the last applied value.
func Snapshot(search, minPrice, maxPrice, genre *string) map[string]string {
	present := map[string]string{}
	if search != nil && *search != "" {
		present[fieldSearch] = *search
	}
	if minPrice != nil && *minPrice != "" {
		present[fieldMinPrice] = *minPrice
	}
	if maxPrice != nil && *maxPrice != "" {
		present[fieldMaxPrice] = *maxPrice
	}
	if genre != nil && *genre != "" {
		present[fieldGenre] = *genre
	}
	return present
}

// Recall reads the remembered filters for scope. Missing keys read as empty.
func (m *FilterMemory) Recall(ctx context.Context, scope string) (RememberedFilters, error) {
	var filters RememberedFilters
	fields := []struct {
		name string
		dst  *string
	}{
		{fieldSearch, &filters.Search},
		{fieldMinPrice, &filters.MinPrice},
		{fieldMaxPrice, &filters.MaxPrice},
		{fieldGenre, &filters.Genre},
	}
	for _, field := range fields {
		value, err := m.store.Get(ctx, m.keyer.FilterKey(scope, field.name))
		if err != nil {
			if errors.Is(err, redisclient.Nil) {
				continue
			}
			return RememberedFilters{}, err
		}
		*field.dst = value
	}
	return filters, nil
}

// Forget drops every remembered field for scope.
func (m *FilterMemory) Forget(ctx context.Context, scope string) error {
	keys := make([]string, 0, 4)
	for _, field := range []string{fieldSearch, fieldMinPrice, fieldMaxPrice, fieldGenre} {
		keys = append(keys, m.keyer.FilterKey(scope, field))
	}
	return m.store.Del(ctx, keys...)
}

// ToListParams converts the remembered snapshot into listing params.
// Unparseable price bounds are ignored rather than failing the delete.
func (f RememberedFilters) ToListParams() ListParams {
	params := ListParams{Search: f.Search, Genre: f.Genre}
	if f.MinPrice != "" {
		if min, err := decimal.NewFromString(f.MinPrice); err == nil {
			params.MinPrice = &min
		}
	}
	if f.MaxPrice != "" {
		if max, err := decimal.NewFromString(f.MaxPrice); err == nil {
			params.MaxPrice = &max
		}
	}
	return params
}

// IsEmpty reports whether nothing was remembered.
func (f RememberedFilters) IsEmpty() bool {
	return f.Search == "" && f.MinPrice == "" && f.MaxPrice == "" && f.Genre == ""
}
