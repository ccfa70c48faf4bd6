package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/stac"
)

// newDescribeCmd creates the describe command.
func newDescribeCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "describe <href>",
		Short: "Print the tree structure of a catalog",
		Long: `Describe resolves the catalog at the given href (file path or URL) and
prints its tree of child catalogs, collections and items. The whole tree is
fetched, so large remote catalogs can take a while; fetched documents are
cached for subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p := newProgress(logger)
			spinner := newSpinner(ctx, "Resolving catalog tree...")
			spinner.Start()

			cat, err := loadCatalog(ctx, args[0], cfg, noCache)
			if err != nil {
				spinner.StopWithError("Failed to load catalog")
				return err
			}

			tree, err := describeTree(ctx, cat)
			if err != nil {
				spinner.StopWithError("Failed to resolve catalog tree")
				return err
			}
			spinner.Stop()

			fmt.Print(tree)

			catalogs, collections, items := countObjects(ctx, cat)
			printStats(catalogs, collections, items)
			p.done(fmt.Sprintf("Described %s", cat.ID()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	return cmd
}

func describeTree(ctx context.Context, cat stac.Container) (string, error) {
	d, ok := cat.(interface {
		Describe(ctx context.Context) (string, error)
	})
	if !ok {
		return "", fmt.Errorf("unsupported container type %T", cat)
	}
	return d.Describe(ctx)
}

// countObjects walks the tree and tallies object counts per kind.
func countObjects(ctx context.Context, cat stac.Container) (catalogs, collections, items int) {
	_ = cat.Walk(ctx, func(c stac.Container, children []stac.Container, its []*stac.Item) error {
		if c.Type() == stac.TypeCollection {
			collections++
		} else {
			catalogs++
		}
		items += len(its)
		return nil
	})
	return catalogs, collections, items
}
