package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/novinbook/bookstore-backend/pkg/auth"
	"github.com/novinbook/bookstore-backend/pkg/config"
)

type fakeSessionChecker struct {
	active map[string]bool
	err    error
}

func (f *fakeSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.active[accessID], nil
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "middleware-secret",
		Issuer:            "bookstore-test",
		ExpirationMinutes: 10,
	}
}

func mintToken(t *testing.T, userID uuid.UUID, accessID string) string {
	t.Helper()

	token, err := pkgAuth.MintAccessToken(authTestConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	checker := &fakeSessionChecker{active: map[string]bool{"session-1": true}}

	var gotUser uuid.UUID
	var gotAccess string
	handler := Auth(authTestConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotAccess = AccessIDFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/favorites", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, userID, "session-1"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != userID {
		t.Fatalf("expected user id on context, got %s", gotUser)
	}
	if gotAccess != "session-1" {
		t.Fatalf("expected access id on context, got %q", gotAccess)
	}
}

func TestAuthRejectsMissingOrBadTokens(t *testing.T) {
	checker := &fakeSessionChecker{active: map[string]bool{}}
	handler := Auth(authTestConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/favorites", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	checker := &fakeSessionChecker{active: map[string]bool{}}
	handler := Auth(authTestConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest("GET", "/favorites", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, uuid.New(), "revoked-session"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
