package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/viz"
)

// newVizCmd creates the viz command.
func newVizCmd() *cobra.Command {
	var (
		noCache  bool
		output   string
		format   string
		detailed bool
		items    bool
	)

	cmd := &cobra.Command{
		Use:   "viz <href>",
		Short: "Render a catalog tree as a diagram",
		Long: `Viz resolves the catalog at the given href and renders its tree as a
Graphviz diagram. Supported formats are dot, svg and png; the format is
inferred from the output extension when --format is omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
				if format == "" {
					format = "dot"
				}
			}

			p := newProgress(logger)
			spinner := newSpinner(ctx, "Rendering catalog...")
			spinner.Start()

			cat, err := loadCatalog(ctx, args[0], cfg, noCache)
			if err != nil {
				spinner.StopWithError("Failed to load catalog")
				return err
			}

			dot, err := viz.ToDOT(ctx, cat, viz.Options{Detailed: detailed, IncludeItems: items})
			if err != nil {
				spinner.StopWithError("Failed to resolve catalog tree")
				return err
			}

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = viz.RenderSVG(ctx, dot)
			case "png":
				data, err = viz.RenderPNG(ctx, dot)
			default:
				spinner.Stop()
				return fmt.Errorf("unknown format %q (want dot, svg or png)", format)
			}
			if err != nil {
				spinner.StopWithError("Failed to render diagram")
				return err
			}
			spinner.Stop()

			if output == "" {
				fmt.Print(string(data))
			} else {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return err
				}
				printSuccess("Rendered %s", cat.ID())
				printFile(output)
			}
			p.done(fmt.Sprintf("Rendered %s as %s", cat.ID(), format))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg or png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include titles and item counts in labels")
	cmd.Flags().BoolVar(&items, "items", false, "include one node per item")
	return cmd
}
