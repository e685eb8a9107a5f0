package cli

import (
	"fmt"

	"github.com/bookstore/services/storefront/internal/seed"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the books in a YAML file",
		Long: `Replace the stored catalog with the books listed in a YAML seed file.

The file is validated in full before anything is written; a bad record
leaves the existing catalog untouched. Catalog order follows file order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Repo.ReplaceCatalog(cmd.Context(), books); err != nil {
				return err
			}
			if err := a.ReloadCatalog(cmd.Context()); err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]int{
					"books":    len(a.Catalog),
					"featured": len(a.Carousel.Featured()),
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d books (%d featured)\n",
				len(a.Catalog), len(a.Carousel.Featured()))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
