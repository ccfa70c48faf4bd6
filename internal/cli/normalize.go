package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/stac"
)

// newNormalizeCmd creates the normalize command.
func newNormalizeCmd() *cobra.Command {
	var (
		noCache     bool
		save        bool
		catalogType string
	)

	cmd := &cobra.Command{
		Use:   "normalize <href> <root-href>",
		Short: "Rewrite a tree's hrefs under a new root",
		Long: `Normalize resolves the catalog at the given href and recomputes every
descendant's self href following the best-practices layout, rooted at the
new root href. With --save the rewritten tree is written out; without it
the command reports what the new root would be.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if catalogType == "" {
				catalogType = cfg.CatalogType
			}

			rootHref := args[1]
			if !stac.IsAbsoluteHref(rootHref) {
				abs, err := filepath.Abs(rootHref)
				if err != nil {
					return err
				}
				rootHref = filepath.ToSlash(abs)
			}

			p := newProgress(logger)
			cat, err := loadCatalog(ctx, args[0], cfg, noCache)
			if err != nil {
				return err
			}

			if err := cat.NormalizeHrefs(ctx, rootHref, nil); err != nil {
				return err
			}

			if save {
				cat.SetIO(newIO(ctx, cfg, noCache))
				if err := cat.Save(ctx, stac.CatalogType(catalogType)); err != nil {
					return err
				}
				printSuccess("Normalized and saved %s", cat.ID())
			} else {
				printSuccess("Normalized %s (dry run, pass --save to write)", cat.ID())
			}
			printFile(cat.SelfHref())
			p.done(fmt.Sprintf("Normalized %s", cat.ID()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	cmd.Flags().BoolVar(&save, "save", false, "write the rewritten tree")
	cmd.Flags().StringVar(&catalogType, "catalog-type", "", "save style (default from config)")
	return cmd
}
