// Package seed loads catalog fixtures from YAML files.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when two records share an id
var ErrDuplicateID = errors.New("duplicate book id")

// dateLayouts are tried in order when parsing date_published
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01", "2006"}

// File is the on-disk catalog fixture
type File struct {
	Books []Record `yaml:"books" validate:"dive"`
}

// Record is one book as written in a fixture. Rating is not range-checked;
// out-of-range values are kept and clamped only for display.
type Record struct {
	ID            string   `yaml:"id" validate:"required"`
	Title         string   `yaml:"title" validate:"required"`
	Author        string   `yaml:"author" validate:"required"`
	Genre         []string `yaml:"genre" validate:"required,min=1,dive,required"`
	DatePublished string   `yaml:"date_published" validate:"required"`
	Rating        float64  `yaml:"rating"`
	ReviewCount   int      `yaml:"review_count" validate:"gte=0"`
	Price         float64  `yaml:"price" validate:"gte=0"`
	Featured      bool     `yaml:"featured"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFile reads and validates a fixture file
func LoadFile(path string) ([]catalog.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a fixture and converts it to catalog books, preserving order.
// Validation errors name the offending record.
func Load(r io.Reader) ([]catalog.Book, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []catalog.Book{}, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Books))
	books := make([]catalog.Book, 0, len(file.Books))
	for i, rec := range file.Books {
		if _, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("record %d: %w: %s", i, ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		book, err := rec.convert()
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.ID, err)
		}
		books = append(books, book)
	}
	return books, nil
}

// Book validates a single record and converts it to a catalog book
func (r Record) Book() (catalog.Book, error) {
	if err := validate.Struct(r); err != nil {
		return catalog.Book{}, fmt.Errorf("invalid book: %w", err)
	}
	return r.convert()
}

func (r Record) convert() (catalog.Book, error) {
	published, err := parseDate(r.DatePublished)
	if err != nil {
		return catalog.Book{}, err
	}
	return catalog.Book{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		Genres:        normalizeGenres(r.Genre),
		DatePublished: published,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Price:         r.Price,
		Featured:      r.Featured,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date_published %q", s)
}

// normalizeGenres trims tags and drops duplicates. Commas inside a tag become
// spaces since the database column is comma separated.
func normalizeGenres(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ReplaceAll(tag, ",", " "))
		if _, ok := seen[tag]; ok || tag == "" {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
