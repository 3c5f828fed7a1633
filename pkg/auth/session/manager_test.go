package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/novinbook/bookstore-backend/pkg/config"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeStore) AccessSessionKey(accessID string) string {
	return "bs:session:" + accessID
}

func newTestManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestGenerateStoresToken(t *testing.T) {
	m, store := newTestManager()

	token, err := m.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty refresh token")
	}
	if store.values["bs:session:access-1"] != token {
		t.Fatalf("expected token persisted under session key")
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	m, store := newTestManager()
	token, err := m.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newAccessID, newToken, err := m.Rotate(context.Background(), "access-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newAccessID == "access-1" {
		t.Fatalf("expected fresh access id")
	}
	if _, ok := store.values["bs:session:access-1"]; ok {
		t.Fatalf("expected old session removed")
	}
	if store.values["bs:session:"+newAccessID] != newToken {
		t.Fatalf("expected new session persisted")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.Generate(context.Background(), "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := m.Rotate(context.Background(), "access-1", "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestHasSessionLifecycle(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	ok, err := m.HasSession(ctx, "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected no session before generate")
	}

	if _, err := m.Generate(ctx, "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	ok, err = m.HasSession(ctx, "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected session after generate")
	}

	if err := m.Revoke(ctx, "access-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err = m.HasSession(ctx, "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected session gone after revoke")
	}
}

func TestNewManagerValidatesTTL(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{}); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
