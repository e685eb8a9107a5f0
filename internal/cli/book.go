package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookstore/services/storefront/internal/app"
	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/bookstore/services/storefront/internal/repo"
	"github.com/bookstore/services/storefront/internal/seed"
	"github.com/spf13/cobra"
)

// NewBookCommand creates the book command for single catalog records.
func NewBookCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Show, add or delete a single catalog book",
		Long: `Show, add or delete a single book in the stored catalog.

Added books go to the end of catalog order. Deleting a book leaves any cart
lines for it in place; they are shown as no longer in the catalog.`,
	}

	cmd.AddCommand(newBookGetCommand(rootOpts))
	cmd.AddCommand(newBookAddCommand(rootOpts))
	cmd.AddCommand(newBookDeleteCommand(rootOpts))

	return cmd
}

func newBookGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <book-id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				book, err := a.Repo.GetBook(ctx, args[0])
				if errors.Is(err, repo.ErrBookNotFound) {
					return fmt.Errorf("%w: %s", err, args[0])
				}
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), book)
				}
				return writeBooks(cmd.OutOrStdout(), []catalog.Book{book})
			})
		},
	}
}

func newBookAddCommand(rootOpts *RootOptions) *cobra.Command {
	var rec seed.Record

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := rec.Book()
			if err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if err := a.Repo.CreateBook(ctx, book); err != nil {
					if errors.Is(err, repo.ErrBookAlreadyExists) {
						return fmt.Errorf("%w: %s", err, book.ID)
					}
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), book)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", book.ID, book.Title)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&rec.ID, "id", "", "book id")
	cmd.Flags().StringVar(&rec.Title, "title", "", "title")
	cmd.Flags().StringVar(&rec.Author, "author", "", "author")
	cmd.Flags().StringSliceVar(&rec.Genre, "genre", nil, "genre tags, comma separated")
	cmd.Flags().StringVar(&rec.DatePublished, "published", "", "publication date (YYYY, YYYY-MM or YYYY-MM-DD)")
	cmd.Flags().Float64Var(&rec.Rating, "rating", 0, "average rating")
	cmd.Flags().IntVar(&rec.ReviewCount, "reviews", 0, "review count")
	cmd.Flags().Float64Var(&rec.Price, "price", 0, "price")
	cmd.Flags().BoolVar(&rec.Featured, "featured", false, "show in the featured carousel")

	return cmd
}

func newBookDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Delete a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if err := a.Repo.DeleteBook(ctx, args[0]); err != nil {
					if errors.Is(err, repo.ErrBookNotFound) {
						return fmt.Errorf("%w: %s", err, args[0])
					}
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return err
			})
		},
	}
}
