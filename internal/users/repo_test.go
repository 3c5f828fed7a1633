package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novinbook/bookstore-backend/internal/catalog"
	"github.com/novinbook/bookstore-backend/pkg/db/models"
)

func TestCreateAndFindByEmailNormalizes(t *testing.T) {
	db := catalog.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "  Reader@Example.COM ", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "reader@example.com", user.Email)

	found, err := repo.FindByEmail(ctx, "READER@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestCreateDuplicateEmailFails(t *testing.T) {
	db := catalog.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "hash"}))
	err := repo.Create(ctx, &models.User{Email: "DUP@example.com", PasswordHash: "hash"})
	require.Error(t, err)
}

func TestUpdateLastLogin(t *testing.T) {
	db := catalog.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "login@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	at := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, reloaded.LastLoginAt.Equal(at))
}

func TestGetOrCreateProfileIsLazy(t *testing.T) {
	db := catalog.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	assert.Zero(t, count)

	profile, err := repo.GetOrCreateProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Empty(t, profile.Phone)

	again, err := repo.GetOrCreateProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateProfile(t *testing.T) {
	db := catalog.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	profile, err := repo.UpdateProfile(ctx, userID, " 555-0100 ", " 12 Main St ")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", profile.Phone)
	assert.Equal(t, "12 Main St", profile.Address)

	reloaded, err := repo.GetOrCreateProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", reloaded.Phone)
}
