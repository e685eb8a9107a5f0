package cli

import (
	"fmt"

	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/bookstore/services/storefront/internal/metrics"
	"github.com/spf13/cobra"
)

type booksOptions struct {
	search   string
	genre    string
	sortKey  string
	dir      string
	page     int
	pageSize int
}

// NewBooksCommand creates the books command.
func NewBooksCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &booksOptions{}

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List one page of the catalog",
		Long: `List one page of the catalog after search, genre filter and sort.

Search matches title or author, case-insensitively. Sort keys are title,
author, datePublished, rating, reviewCount and price.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			pageSize := opts.pageSize
			if pageSize <= 0 {
				pageSize = a.Config.DefaultPageSize
			}

			criteria := catalog.Criteria{
				Search:    opts.search,
				Genre:     opts.genre,
				SortKey:   catalog.ParseSortKey(opts.sortKey),
				Direction: catalog.ParseDirection(opts.dir),
			}
			browser := catalog.NewBrowser(criteria, pageSize)
			browser.SetPage(opts.page)

			metrics.CatalogQueries.WithLabelValues(string(criteria.SortKey)).Inc()
			result := browser.Result(a.Catalog)
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "q", "q", "", "search title or author")
	cmd.Flags().StringVar(&opts.genre, "genre", catalog.AllGenres, "genre tag")
	cmd.Flags().StringVar(&opts.sortKey, "sort", string(catalog.SortByTitle), "sort key")
	cmd.Flags().StringVar(&opts.dir, "dir", string(catalog.Ascending), "sort direction (asc|desc)")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "books per page (default from DEFAULT_PAGE_SIZE)")

	return cmd
}

// NewGenresCommand creates the genres command.
func NewGenresCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genre filter options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			genres := catalog.Genres(a.Catalog)
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), genres)
			}
			for _, g := range genres {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		},
	}
}

// NewFeaturedCommand creates the featured command.
func NewFeaturedCommand(rootOpts *RootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show one page of the featured carousel",
		Long: `Show one page of the featured carousel, four books per page.

The page index wraps in both directions, so --page=-1 shows the last page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			view := a.Carousel.View(page)
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return writeCarousel(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "carousel page, starting at 0")

	return cmd
}
