package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is the catalog's central entity. The author reference is required and
// protected against deletes while the publisher reference is nulled when the publisher
// goes away; both rules are enforced explicitly in the taxonomy repository
// as well as by the schema constraints.
type Book struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string          `gorm:"column:title;not null"`
	Description     string          `gorm:"column:description;not null"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,3);not null"`
	Pages           int             `gorm:"column:pages;not null"`
	Quantity        int             `gorm:"column:quantity;not null;default:0"`
	PublicationDate time.Time       `gorm:"column:publication_date;type:date;not null"`
	ImageKey        *string         `gorm:"column:image_key"`
	AuthorID        *uuid.UUID      `gorm:"column:author_id;type:uuid;not null"`
	Author          *Author         `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	PublisherID     *uuid.UUID      `gorm:"column:publisher_id;type:uuid"`
	Publisher       *Publisher      `gorm:"foreignKey:PublisherID;constraint:OnDelete:SET NULL"`
	Genres          []Genre         `gorm:"many2many:book_genres"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
