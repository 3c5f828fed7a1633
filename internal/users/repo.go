package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
)

// Repository encapsulates user and profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads a user by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = NormalizeEmail(user.Email)
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateLastLogin stamps the login time without touching other columns.
func (r *Repository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).
		Error
}

// GetOrCreateProfile returns the profile row for userID, creating an empty
// one on first access.
func (r *Repository) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).
		Where(models.UserProfile{UserID: userID}).
		Attrs(models.UserProfile{ID: uuid.New()}).
		FirstOrCreate(&profile).
		Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile inserts a profile row for a freshly registered user.
func (r *Repository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// UpdateProfile persists phone/address edits for the user's profile.
func (r *Repository) UpdateProfile(ctx context.Context, userID uuid.UUID, phone, address string) (*models.UserProfile, error) {
	profile, err := r.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Phone = strings.TrimSpace(phone)
	profile.Address = strings.TrimSpace(address)
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// NormalizeEmail lowercases and trims an email so lookups and uniqueness
// behave consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
