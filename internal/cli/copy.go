package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/stac"
)

// newCopyCmd creates the copy command.
func newCopyCmd() *cobra.Command {
	var (
		noCache     bool
		catalogType string
	)

	cmd := &cobra.Command{
		Use:   "copy <href> <dest-dir>",
		Short: "Deep-copy a catalog tree to a new location",
		Long: `Copy resolves the entire catalog at the given href, deep-copies it
(preserving shared structure such as items reachable through several
links), rewrites every href under the destination directory and saves the
copy. The source tree is left untouched.`,
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

			dest, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}

			p := newProgress(logger)
			spinner := newSpinner(ctx, "Copying catalog tree...")
			spinner.Start()

			cat, err := loadCatalog(ctx, args[0], cfg, noCache)
			if err != nil {
				spinner.StopWithError("Failed to load catalog")
				return err
			}

			copied, err := cat.FullCopy(ctx)
			if err != nil {
				spinner.StopWithError("Failed to copy catalog")
				return err
			}
			target, ok := copied.(stac.Container)
			if !ok {
				spinner.StopWithError("Copy is not a catalog")
				return fmt.Errorf("copied object is a %s, expected a catalog", copied.Type())
			}

			if err := target.NormalizeHrefs(ctx, filepath.ToSlash(dest), nil); err != nil {
				spinner.StopWithError("Failed to rewrite hrefs")
				return err
			}
			target.SetIO(newIO(ctx, cfg, noCache))
			if err := target.Save(ctx, stac.CatalogType(catalogType)); err != nil {
				spinner.StopWithError("Failed to save copy")
				return err
			}
			spinner.Stop()

			catalogs, collections, items := countObjects(ctx, target)
			printSuccess("Copied %s", cat.ID())
			printFile(dest)
			printStats(catalogs, collections, items)
			p.done(fmt.Sprintf("Copied %s to %s", cat.ID(), dest))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	cmd.Flags().StringVar(&catalogType, "catalog-type", "", "save style (default from config)")
	return cmd
}
