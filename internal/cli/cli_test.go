package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bookstore/services/storefront/internal/cart"
	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `books:
  - {id: b1, title: Dune, author: Frank Herbert, genre: [scifi], date_published: 1965-08-01, rating: 4.6, review_count: 900, price: 9.99, featured: true}
  - {id: b2, title: Emma, author: Jane Austen, genre: [classic, romance], date_published: 1815-12-23, rating: 4.0, review_count: 300, price: 4.5}
  - {id: b3, title: Neuromancer, author: William Gibson, genre: [scifi], date_published: 1984-07-01, rating: 4.2, review_count: 500, price: 7.25, featured: true}
`

// setupEnv points the CLI at a fresh sqlite database with SQL cart storage
func setupEnv(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "storefront.db"))
	t.Setenv("CART_BACKEND", "sql")
	t.Setenv("CART_KEY", "cart")
	t.Setenv("CATALOG_SEED_FILE", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("DEFAULT_PAGE_SIZE", "2")

	path := filepath.Join(dir, "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	out, err := run(t, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "storefront", cmd.Use)

	for _, name := range []string{"seed", "books", "genres", "featured", "book", "cart"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "genres", "--format", "yaml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestSeedRequiresFile(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "seed")
	assert.Error(t, err)
}

func TestSeedAndBrowse(t *testing.T) {
	path := setupEnv(t)

	out := mustRun(t, "seed", "--file", path)
	assert.Contains(t, out, "Seeded 3 books (2 featured)")

	var result catalog.Result
	out = mustRun(t, "books", "--format", "json", "--sort", "price", "--dir", "desc")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Books, 2)
	assert.Equal(t, "b1", result.Books[0].ID)
	assert.Equal(t, "b3", result.Books[1].ID)

	out = mustRun(t, "books", "--format", "json", "--genre", "scifi", "-q", "GIBSON")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Books, 1)
	assert.Equal(t, "b3", result.Books[0].ID)

	out = mustRun(t, "books", "--genre", "poetry")
	assert.Contains(t, out, "No books match")

	out = mustRun(t, "books", "--page-size", "10")
	assert.Contains(t, out, "Neuromancer")
	assert.Contains(t, out, "Page 1 of 1 (3 books)")
}

func TestGenresAndFeatured(t *testing.T) {
	path := setupEnv(t)
	mustRun(t, "seed", "--file", path)

	var genres []string
	out := mustRun(t, "genres", "--format", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &genres))
	assert.Equal(t, []string{"all", "classic", "romance", "scifi"}, genres)

	var view catalog.CarouselView
	out = mustRun(t, "featured", "--format", "json", "--page", "-1")
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 0, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.False(t, view.ShowNavigation)
	assert.Len(t, view.Books, 2)
}

func TestCartCommandsPersistAcrossRuns(t *testing.T) {
	path := setupEnv(t)
	mustRun(t, "seed", "--file", path)

	mustRun(t, "cart", "add", "b1")
	mustRun(t, "cart", "add", "b1")
	mustRun(t, "cart", "add", "b2", "--qty", "3")
	assert.Equal(t, "5\n", mustRun(t, "cart", "count"))

	var summary cart.Summary
	out := mustRun(t, "cart", "set", "b2", "1", "--format", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 3, summary.TotalItemCount)
	assert.InDelta(t, 2*9.99+4.5, summary.Subtotal, 1e-9)

	mustRun(t, "cart", "remove", "b1")
	out = mustRun(t, "cart", "show")
	assert.Contains(t, out, "Emma")
	assert.NotContains(t, out, "Dune")

	mustRun(t, "cart", "set", "b2", "0")
	assert.Contains(t, mustRun(t, "cart", "show"), "Your cart is empty.")
}

func TestCartSetRejectsBadQuantity(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "cart", "set", "b1", "many")
	assert.ErrorContains(t, err, "invalid quantity")
}

func TestCartShowsOrphanedLines(t *testing.T) {
	path := setupEnv(t)
	mustRun(t, "seed", "--file", path)
	mustRun(t, "cart", "add", "gone")

	out := mustRun(t, "cart", "show")
	assert.Contains(t, out, "(no longer in catalog)")
	assert.Equal(t, "1\n", mustRun(t, "cart", "count"))
}

func TestDots(t *testing.T) {
	assert.Equal(t, "○ ● ○", dots(1, 3))
	assert.Equal(t, "●", dots(0, 1))
}

func TestCartWatchRequiresBroker(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "cart", "watch")
	assert.ErrorContains(t, err, "RABBITMQ_URL")
}

func TestCartRejectsEmptyBookID(t *testing.T) {
	path := setupEnv(t)
	mustRun(t, "seed", "--file", path)

	for _, args := range [][]string{
		{"cart", "add", ""},
		{"cart", "add", "  "},
		{"cart", "set", "", "2"},
		{"cart", "remove", ""},
	} {
		_, err := run(t, args...)
		assert.ErrorIs(t, err, errEmptyBookID, "%v", args)
	}
	assert.Contains(t, mustRun(t, "cart", "show"), "Your cart is empty.")
}

func TestBookGetAddDelete(t *testing.T) {
	path := setupEnv(t)
	mustRun(t, "seed", "--file", path)

	var book catalog.Book
	out := mustRun(t, "book", "get", "b2", "--format", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &book))
	assert.Equal(t, "Emma", book.Title)

	_, err := run(t, "book", "get", "missing")
	assert.ErrorContains(t, err, "book not found")

	out = mustRun(t, "book", "add", "--id", "b4", "--title", "Solaris", "--author", "Stanislaw Lem",
		"--genre", "scifi,classic", "--published", "1961", "--price", "8.5", "--featured")
	assert.Contains(t, out, "Added b4 (Solaris)")

	_, err = run(t, "book", "add", "--id", "b4", "--title", "Again", "--author", "X",
		"--genre", "scifi", "--published", "2000")
	assert.ErrorContains(t, err, "book already exists")

	_, err = run(t, "book", "add", "--id", "b5", "--title", "No Genre", "--author", "X", "--published", "2000")
	assert.Error(t, err)

	var result catalog.Result
	out = mustRun(t, "books", "--format", "json", "--page", "2")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 4, result.Total)
	require.Len(t, result.Books, 2)
	assert.Equal(t, "b4", result.Books[1].ID)

	mustRun(t, "cart", "add", "b4")
	out = mustRun(t, "book", "delete", "b4")
	assert.Contains(t, out, "Deleted b4")
	assert.Contains(t, mustRun(t, "cart", "show"), "(no longer in catalog)")

	_, err = run(t, "book", "delete", "b4")
	assert.ErrorContains(t, err, "book not found")
}
