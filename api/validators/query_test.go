package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/novinbook/bookstore-backend/internal/books"
	"github.com/novinbook/bookstore-backend/internal/catalog"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

func TestParseListingQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?search=asimov&min_price=10&max_price=25.5&genre=Sci-Fi&sort=price_desc", nil)

	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Params.Search != "asimov" || parsed.Params.Genre != "Sci-Fi" {
		t.Fatalf("unexpected params %+v", parsed.Params)
	}
	if parsed.Params.Sort != catalog.SortPriceDesc {
		t.Fatalf("unexpected sort %q", parsed.Params.Sort)
	}
	if parsed.Params.MinPrice == nil || parsed.Params.MinPrice.String() != "10" {
		t.Fatalf("unexpected min price %v", parsed.Params.MinPrice)
	}
	if parsed.Params.MaxPrice == nil || parsed.Params.MaxPrice.String() != "25.5" {
		t.Fatalf("unexpected max price %v", parsed.Params.MaxPrice)
	}
	if len(parsed.Present) != 4 {
		t.Fatalf("expected all four fields present, got %v", parsed.Present)
	}
}

func TestParseListingQueryOmittedFieldsAreAbsent(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?search=austen", nil)

	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := parsed.Present["search"]; !ok {
		t.Fatal("expected search to be present")
	}
	if _, ok := parsed.Present["genre"]; ok {
		t.Fatal("expected genre to be absent")
	}
	if parsed.Params.MinPrice != nil || parsed.Params.MaxPrice != nil {
		t.Fatalf("expected nil price bounds, got %+v", parsed.Params)
	}
}

func TestParseListingQueryEmptyFieldsNotRemembered(t *testing.T) {
	r := httptest.NewRequest("GET", "/book-management?search=&min_price=&genre=Drama", nil)

	parsed, err := ParseListingQuery(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Present) != 1 {
		t.Fatalf("expected only genre in the memory snapshot, got %v", parsed.Present)
	}
	if parsed.Present["genre"] != "Drama" {
		t.Fatalf("expected genre Drama, got %v", parsed.Present)
	}
}

func TestParseListingQueryRejectsBadPrices(t *testing.T) {
	for _, raw := range []string{"min_price=abc", "max_price=1.2.3"} {
		r := httptest.NewRequest("GET", "/shop?"+raw, nil)
		_, err := ParseListingQuery(r)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	r := httptest.NewRequest("POST", "/register", strings.NewReader(`{"email":"not-an-email"}`))

	var dest payload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", appErr.Details())
	}
	if details["email"] == "" {
		t.Fatalf("expected email detail, got %v", details)
	}
}

func TestCheckNewGenreLengthBounds(t *testing.T) {
	base := func() books.BookRequest {
		return books.BookRequest{
			Title:           "Dune",
			Description:     "desert planet",
			Price:           "9.99",
			PublicationDate: "1965-08-01",
			NewAuthor:       "Frank Herbert",
		}
	}

	cases := []struct {
		name     string
		newGenre string
		wantErr  bool
	}{
		{"single character rejected", "A", true},
		{"trims to single character rejected", " A ", true},
		{"two characters accepted", "AB", false},
		{"over one hundred characters rejected", strings.Repeat("g", 101), true},
		{"empty accepted", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			req.NewGenre = tc.newGenre
			req.Normalize()
			err := Check(&req)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("expected %q to pass, got %v", tc.newGenre, err)
				}
				return
			}
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error for %q, got %v", tc.newGenre, err)
			}
			details, ok := appErr.Details().(map[string]string)
			if !ok || details["new_genre"] == "" {
				t.Fatalf("expected new_genre field detail, got %v", appErr.Details())
			}
		})
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest("POST", "/register", strings.NewReader(`{"email":"a@b.co","extra":true}`))

	var dest payload
	if err := DecodeJSON(r, &dest); err == nil {
		t.Fatal("expected unknown-field error")
	}
}
