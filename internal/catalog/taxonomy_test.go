package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

func TestGetOrCreateAuthor(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	created, err := repo.GetOrCreateAuthor(ctx, "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "Doe", created.LastName)
	assert.Equal(t, placeholderBio, created.Bio)
	assert.Equal(t, 1900, created.BirthDate.Year())

	again, err := repo.GetOrCreateAuthor(ctx, "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Author{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreatePublisherAndGenre(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	publisher, err := repo.GetOrCreatePublisher(ctx, "Vintage")
	require.NoError(t, err)
	samePublisher, err := repo.GetOrCreatePublisher(ctx, "Vintage")
	require.NoError(t, err)
	assert.Equal(t, publisher.ID, samePublisher.ID)

	genre, err := repo.GetOrCreateGenre(ctx, "Fiction")
	require.NoError(t, err)
	sameGenre, err := repo.GetOrCreateGenre(ctx, "Fiction")
	require.NoError(t, err)
	assert.Equal(t, genre.ID, sameGenre.ID)
}

func TestDeleteAuthorBlockedWhileReferenced(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	author := NewTestAuthor(t, db, "George", "Orwell")
	NewTestBook(t, db, TestBookSpec{Title: "1984", Author: author})

	err := repo.DeleteAuthor(ctx, author.ID)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())

	require.NoError(t, db.Exec("DELETE FROM books").Error)
	require.NoError(t, repo.DeleteAuthor(ctx, author.ID))
}

func TestDeletePublisherDetachesBooks(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	publisher := NewTestPublisher(t, db, "Penguin")
	book := NewTestBook(t, db, TestBookSpec{Title: "Poems", Publisher: publisher})

	require.NoError(t, repo.DeletePublisher(ctx, publisher.ID))

	var reloaded models.Book
	require.NoError(t, db.First(&reloaded, "id = ?", book.ID).Error)
	assert.Nil(t, reloaded.PublisherID)
}
