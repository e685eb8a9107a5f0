package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Book represents a book in the catalog database
type Book struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Position      int       `gorm:"not null;index:idx_books_position" json:"position"` // Catalog order
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Author        string    `gorm:"type:varchar(255);not null" json:"author"`
	Genres        string    `gorm:"type:text;not null" json:"genres"` // Comma separated tags
	DatePublished time.Time `gorm:"not null" json:"date_published"`
	Rating        float64   `gorm:"not null;default:0" json:"rating"`
	ReviewCount   int       `gorm:"not null;default:0" json:"review_count"`
	Price         float64   `gorm:"not null" json:"price"`
	Featured      bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Book model
func (Book) TableName() string {
	return "books"
}

// BeforeCreate hook to set timestamps
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
	return nil
}

// GenreList splits the stored genre column into tags
func (b *Book) GenreList() []string {
	var tags []string
	for _, g := range strings.Split(b.Genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			tags = append(tags, g)
		}
	}
	return tags
}

// JoinGenres is the inverse of GenreList
func JoinGenres(tags []string) string {
	return strings.Join(tags, ",")
}

// KVEntry is one key of the durable key/value store backing the cart
type KVEntry struct {
	Key       string    `gorm:"column:name;primaryKey;type:varchar(128)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}

// BeforeSave hook to update timestamp
func (e *KVEntry) BeforeSave(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return nil
}
