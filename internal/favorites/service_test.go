package favorites

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/internal/catalog"
	"github.com/novinbook/bookstore-backend/pkg/config"
	"github.com/novinbook/bookstore-backend/pkg/db"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	gormDB := catalog.SetupTestDB(t)

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file::memory:?cache=shared",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc, err := NewService(ServiceParams{DB: client})
	require.NoError(t, err)
	return svc, gormDB
}

func TestToggleIsAnInvolution(t *testing.T) {
	svc, gormDB := newTestService(t)
	ctx := context.Background()

	book := catalog.NewTestBook(t, gormDB, catalog.TestBookSpec{Title: "Persuasion"})
	userID := uuid.New()

	first, err := svc.Toggle(ctx, userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, first.Status)

	second, err := svc.Toggle(ctx, userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRemoved, second.Status)

	books, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestToggleUnknownBook(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestTogglesAreScopedPerUser(t *testing.T) {
	svc, gormDB := newTestService(t)
	ctx := context.Background()

	book := catalog.NewTestBook(t, gormDB, catalog.TestBookSpec{Title: "Emma"})
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Toggle(ctx, alice, book.ID)
	require.NoError(t, err)

	bobBooks, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobBooks)

	aliceBooks, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceBooks, 1)
	assert.Equal(t, "Emma", aliceBooks[0].Title)
}

func TestListPreloadsRelations(t *testing.T) {
	svc, gormDB := newTestService(t)
	ctx := context.Background()

	author := catalog.NewTestAuthor(t, gormDB, "Jane", "Austen")
	book := catalog.NewTestBook(t, gormDB, catalog.TestBookSpec{Title: "Emma", Author: author})
	userID := uuid.New()

	_, err := svc.Toggle(ctx, userID, book.ID)
	require.NoError(t, err)

	books, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "Austen", books[0].Author.LastName)
}
