package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bookstore/services/storefront/internal/app"
	"github.com/bookstore/services/storefront/internal/cart"
	"github.com/bookstore/services/storefront/internal/events"
	"github.com/spf13/cobra"
)

// NewCartCommand creates the cart command and its subcommands.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the shopping cart",
		Long: `Show and change the shopping cart kept in the configured cart storage.

Each change re-reads the stored cart and writes the whole cart back. There
is no locking: two concurrent changes can overwrite each other.`,
	}

	cmd.AddCommand(newCartShowCommand(rootOpts))
	cmd.AddCommand(newCartCountCommand(rootOpts))
	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartSetCommand(rootOpts))
	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartWatchCommand(rootOpts))

	return cmd
}

// withApp opens the storefront for one command and closes it afterwards
func withApp(cmd *cobra.Command, rootOpts *RootOptions, fn func(ctx context.Context, a *app.App) error) error {
	a, err := openApp(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}

// errEmptyBookID is returned for a blank book id argument
var errEmptyBookID = errors.New("book id is required")

func requireBookID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errEmptyBookID
	}
	return nil
}

func printCart(cmd *cobra.Command, rootOpts *RootOptions, a *app.App, c cart.Cart) error {
	summary := cart.Resolve(c, a.Index)
	if rootOpts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	return writeSummary(cmd.OutOrStdout(), summary)
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart lines with titles and subtotals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				return printCart(cmd, rootOpts, a, a.Cart.Read(ctx))
			})
		},
	}
}

func newCartCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the total number of items in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				count := a.Cart.TotalItemCount(ctx)
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"count": count})
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), count)
				return err
			})
		},
	}
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add a book to the cart, or increase its quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBookID(args[0]); err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if _, ok := a.Index.Lookup(args[0]); !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not in the catalog\n", args[0])
				}
				updated, err := a.Cart.AddOrIncrement(ctx, args[0], qty)
				if err != nil {
					return err
				}
				return printCart(cmd, rootOpts, a, updated)
			})
		},
	}

	cmd.Flags().IntVar(&qty, "qty", 1, "quantity to add")

	return cmd
}

func newCartSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <book-id> <quantity>",
		Short: "Set the quantity of a cart line; zero or less removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBookID(args[0]); err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				updated, err := a.Cart.SetQuantity(ctx, args[0], qty)
				if err != nil {
					return err
				}
				return printCart(cmd, rootOpts, a, updated)
			})
		},
	}
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <book-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBookID(args[0]); err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				updated, err := a.Cart.Remove(ctx, args[0])
				if err != nil {
					return err
				}
				return printCart(cmd, rootOpts, a, updated)
			})
		},
	}
}

func newCartWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the item count whenever the cart changes",
		Long: `Print the cart item count, then print it again after every cart.updated
event until interrupted. Each event triggers a fresh read of cart storage;
the count carried by the event is not trusted. Requires RABBITMQ_URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app.App) error {
				if a.Config.RabbitMQURL == "" {
					return errors.New("cart watch requires RABBITMQ_URL")
				}

				sub, err := events.NewSubscriber(a.Config.RabbitMQURL, "storefront-cli-watch", a.Log)
				if err != nil {
					return err
				}
				defer sub.Close()

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, a.Cart.TotalItemCount(ctx))

				err = sub.Run(ctx, func(ctx context.Context, data events.CartUpdatedData) {
					if data.Key != a.Cart.Key() {
						return
					}
					fmt.Fprintln(out, a.Cart.TotalItemCount(ctx))
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}
