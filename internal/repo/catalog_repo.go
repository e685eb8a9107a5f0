package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/bookstore/services/storefront/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrBookNotFound is returned when a book is not found
	ErrBookNotFound = errors.New("book not found")

	// ErrBookAlreadyExists is returned when trying to create a book that already exists
	ErrBookAlreadyExists = errors.New("book already exists")
)

// CatalogRepository handles book catalog persistence
type CatalogRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(database *db.DB, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:  database,
		log: logger,
	}
}

// LoadCatalog returns every book in catalog order. The result is the
// read-only catalog for a session.
func (r *CatalogRepository) LoadCatalog(ctx context.Context) ([]catalog.Book, error) {
	var rows []*db.Book
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		r.log.Error("Failed to load catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	books := make([]catalog.Book, len(rows))
	for i, row := range rows {
		books[i] = ToCatalogBook(row)
	}

	r.log.Info("Catalog loaded", zap.Int("books", len(books)))
	return books, nil
}

// GetBook retrieves a book by id
func (r *CatalogRepository) GetBook(ctx context.Context, id string) (catalog.Book, error) {
	var row db.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Book{}, ErrBookNotFound
		}
		r.log.Error("Failed to get book", zap.String("id", id), zap.Error(err))
		return catalog.Book{}, err
	}

	return ToCatalogBook(&row), nil
}

// CreateBook appends a book to the end of the catalog
func (r *CatalogRepository) CreateBook(ctx context.Context, book catalog.Book) error {
	// Check if book already exists
	var existing db.Book
	err := r.db.WithContext(ctx).Where("id = ?", book.ID).First(&existing).Error
	if err == nil {
		return ErrBookAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error("Failed to check book existence", zap.String("id", book.ID), zap.Error(err))
		return err
	}

	position, err := r.nextPosition(ctx)
	if err != nil {
		return err
	}

	row := FromCatalogBook(book, position)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		r.log.Error("Failed to create book", zap.String("id", book.ID), zap.Error(err))
		return err
	}

	r.log.Info("Book created", zap.String("id", book.ID), zap.String("title", book.Title))
	return nil
}

// ReplaceCatalog swaps the whole catalog for books, keeping their order
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, books []catalog.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.Book{}).Error; err != nil {
			return fmt.Errorf("failed to clear books: %w", err)
		}
		if len(books) == 0 {
			return nil
		}

		rows := make([]*db.Book, len(books))
		for i, b := range books {
			rows[i] = FromCatalogBook(b, i)
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert books: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to replace catalog", zap.Error(err))
		return err
	}

	r.log.Info("Catalog replaced", zap.Int("books", len(books)))
	return nil
}

// DeleteBook removes a book from the catalog. Cart lines referencing it
// become orphans.
func (r *CatalogRepository) DeleteBook(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Book{})
	if result.Error != nil {
		r.log.Error("Failed to delete book", zap.String("id", id), zap.Error(result.Error))
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}

	r.log.Info("Book deleted", zap.String("id", id))
	return nil
}

// GetStats returns catalog statistics for metrics
func (r *CatalogRepository) GetStats(ctx context.Context) (total, featured int64, err error) {
	if err := r.db.WithContext(ctx).Model(&db.Book{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count total books: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&db.Book{}).Where("featured = ?", true).Count(&featured).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count featured books: %w", err)
	}

	return total, featured, nil
}

func (r *CatalogRepository) nextPosition(ctx context.Context) (int, error) {
	var last db.Book
	err := r.db.WithContext(ctx).Order("position DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get last book: %w", err)
	}
	return last.Position + 1, nil
}

// ToCatalogBook converts a database row into a catalog record
func ToCatalogBook(row *db.Book) catalog.Book {
	return catalog.Book{
		ID:            row.ID,
		Title:         row.Title,
		Author:        row.Author,
		Genres:        row.GenreList(),
		DatePublished: row.DatePublished.UTC(),
		Rating:        row.Rating,
		ReviewCount:   row.ReviewCount,
		Price:         row.Price,
		Featured:      row.Featured,
	}
}

// FromCatalogBook converts a catalog record into a database row at position
func FromCatalogBook(b catalog.Book, position int) *db.Book {
	return &db.Book{
		ID:            b.ID,
		Position:      position,
		Title:         b.Title,
		Author:        b.Author,
		Genres:        db.JoinGenres(b.Genres),
		DatePublished: b.DatePublished,
		Rating:        b.Rating,
		ReviewCount:   b.ReviewCount,
		Price:         b.Price,
		Featured:      b.Featured,
	}
}
