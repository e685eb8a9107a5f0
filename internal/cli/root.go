package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/bookstore/services/storefront/internal/app"
	"github.com/bookstore/services/storefront/internal/config"
	"github.com/bookstore/services/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format   string // "json" | "text"
	LogLevel string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the storefront CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the bookstore catalog and manage the cart",
		Long: `Browse the bookstore catalog and manage the shopping cart.

Configuration comes from the environment (and a .env file when present),
the same way the storefront service is configured, so the CLI reads and
writes the same catalog database and cart storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewBooksCommand(opts))
	cmd.AddCommand(NewGenresCommand(opts))
	cmd.AddCommand(NewFeaturedCommand(opts))
	cmd.AddCommand(NewBookCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))

	return cmd
}

// openApp loads configuration and connects the storefront components.
// Cart notifications stay off: the process exits before an async publish
// would be confirmed.
func openApp(ctx context.Context, opts *RootOptions) (*app.App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg.ServiceName, opts.LogLevel, logger.WithConsole())
	return app.New(ctx, cfg, log, app.Options{})
}
