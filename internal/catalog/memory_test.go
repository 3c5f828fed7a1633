package catalog

import (
	"context"
	"testing"
	"time"
)

func newTestFilterMemory() *FilterMemory {
	store := NewMemoryFilterStore()
	return NewFilterMemoryWithBackend(store, store, time.Hour)
}

func strPtr(v string) *string { return &v }

func TestRememberOnlyUpdatesProvidedFields(t *testing.T) {
	memory := newTestFilterMemory()
	ctx := context.Background()

	err := memory.Remember(ctx, "user-1", Snapshot(strPtr("tolstoy"), strPtr("5"), strPtr("50"), strPtr("Fiction")))
	if err != nil {
		t.Fatalf("remember: %v", err)
	}

	// A later request carrying only the search term must leave the other
	// remembered fields untouched.
	if err := memory.Remember(ctx, "user-1", Snapshot(strPtr("chekhov"), nil, nil, nil)); err != nil {
		t.Fatalf("remember: %v", err)
	}

	filters, err := memory.Recall(ctx, "user-1")
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if filters.Search != "chekhov" {
		t.Fatalf("expected updated search, got %q", filters.Search)
	}
	if filters.MinPrice != "5" || filters.MaxPrice != "50" || filters.Genre != "Fiction" {
		t.Fatalf("expected untouched fields, got %+v", filters)
	}
}

func TestClearedFieldKeepsRememberedValue(t *testing.T) {
	memory := newTestFilterMemory()
	ctx := context.Background()

	if err := memory.Remember(ctx, "user-1", Snapshot(strPtr("tolkien"), nil, nil, nil)); err != nil {
		t.Fatalf("remember: %v", err)
	}

	// A submitted-but-cleared form field arrives as an empty string; it
	// must not wipe the last applied value.
	if err := memory.Remember(ctx, "user-1", Snapshot(strPtr(""), strPtr(""), nil, nil)); err != nil {
		t.Fatalf("remember: %v", err)
	}

	filters, err := memory.Recall(ctx, "user-1")
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if filters.Search != "tolkien" {
		t.Fatalf("expected remembered search to survive, got %q", filters.Search)
	}
}

func TestSnapshotSkipsEmptyValues(t *testing.T) {
	present := Snapshot(strPtr(""), strPtr("5"), nil, strPtr(""))
	if len(present) != 1 {
		t.Fatalf("expected only min_price, got %v", present)
	}
	if present[fieldMinPrice] != "5" {
		t.Fatalf("expected min_price 5, got %v", present)
	}
}

func TestRecallMissingFieldsReadEmpty(t *testing.T) {
	memory := newTestFilterMemory()

	filters, err := memory.Recall(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if !filters.IsEmpty() {
		t.Fatalf("expected empty filters, got %+v", filters)
	}
}

func TestRememberScopesAreIsolated(t *testing.T) {
	memory := newTestFilterMemory()
	ctx := context.Background()

	if err := memory.Remember(ctx, "user-1", Snapshot(strPtr("kafka"), nil, nil, nil)); err != nil {
		t.Fatalf("remember: %v", err)
	}

	other, err := memory.Recall(ctx, "user-2")
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if !other.IsEmpty() {
		t.Fatalf("expected other scope to be empty, got %+v", other)
	}
}

func TestForgetDropsAllFields(t *testing.T) {
	memory := newTestFilterMemory()
	ctx := context.Background()

	if err := memory.Remember(ctx, "user-1", Snapshot(strPtr("kafka"), strPtr("1"), strPtr("2"), strPtr("Drama"))); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if err := memory.Forget(ctx, "user-1"); err != nil {
		t.Fatalf("forget: %v", err)
	}

	filters, err := memory.Recall(ctx, "user-1")
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if !filters.IsEmpty() {
		t.Fatalf("expected forgotten filters, got %+v", filters)
	}
}

func TestToListParams(t *testing.T) {
	filters := RememberedFilters{Search: "kafka", MinPrice: "5.5", MaxPrice: "bogus", Genre: "Drama"}
	params := filters.ToListParams()

	if params.Search != "kafka" || params.Genre != "Drama" {
		t.Fatalf("unexpected params %+v", params)
	}
	if params.MinPrice == nil || params.MinPrice.String() != "5.5" {
		t.Fatalf("expected parsed min price, got %v", params.MinPrice)
	}
	if params.MaxPrice != nil {
		t.Fatalf("expected unparseable max price to be dropped, got %v", params.MaxPrice)
	}
}
