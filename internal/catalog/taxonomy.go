package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
)

// Placeholder values stamped onto authors created from free text. The real
// biography is filled in later by an editor.
const placeholderBio = "Biography pending."

var placeholderBirthDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// TaxonomyRepository resolves and manages authors, publishers, and genres.
type TaxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository constructs a taxonomy repository bound to the
// provided gorm DB.
func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

// GetOrCreateAuthor finds an author by exact first/last name or creates one
// with placeholder biography fields.
func (r *TaxonomyRepository) GetOrCreateAuthor(ctx context.Context, firstName, lastName string) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		First(&author).
		Error
	if err == nil {
		return &author, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	author = models.Author{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Bio:       placeholderBio,
		BirthDate: placeholderBirthDate,
	}
	if err := r.db.WithContext(ctx).Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetOrCreatePublisher finds a publisher by exact name or creates it.
func (r *TaxonomyRepository) GetOrCreatePublisher(ctx context.Context, name string) (*models.Publisher, error) {
	var publisher models.Publisher
	err := r.db.WithContext(ctx).
		Where(models.Publisher{Name: name}).
		Attrs(models.Publisher{ID: uuid.New()}).
		FirstOrCreate(&publisher).
		Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

// GetOrCreateGenre finds a genre by exact name or creates it.
func (r *TaxonomyRepository) GetOrCreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.WithContext(ctx).
		Where(models.Genre{Name: name}).
		Attrs(models.Genre{ID: uuid.New()}).
		FirstOrCreate(&genre).
		Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// DeleteAuthor removes an author unless books still reference them.
func (r *TaxonomyRepository) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("author_id = ?", id).
		Count(&count).
		Error; err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "author still has books")
	}
	result := r.db.WithContext(ctx).Delete(&models.Author{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "author not found")
	}
	return nil
}

// DeletePublisher removes a publisher after detaching it from any books.
func (r *TaxonomyRepository) DeletePublisher(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("publisher_id = ?", id).
		Update("publisher_id", nil).
		Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.Publisher{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "publisher not found")
	}
	return nil
}
