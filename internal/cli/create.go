package cli

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/stac"
	"github.com/stacforge/gostac/pkg/stacio"
)

// newCreateCmd creates the create command.
func newCreateCmd() *cobra.Command {
	var (
		id          string
		title       string
		description string
		kind        string
		catalogType string
	)

	cmd := &cobra.Command{
		Use:   "create <dir>",
		Short: "Scaffold a new catalog or collection",
		Long: `Create writes a fresh root catalog (or collection) into the given
directory. When --id is omitted a random UUID is generated. Collections get
a global placeholder extent to refine later.`,
		Args: cobra.ExactArgs(1),
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

			if id == "" {
				id = uuid.NewString()
				logger.Debugf("generated id %s", id)
			}
			if err := errors.ValidateID(id); err != nil {
				return err
			}

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			var cat stac.Container
			switch kind {
			case "catalog":
				c := stac.NewCatalog(id, description)
				c.Title = title
				cat = c
			case "collection":
				c := stac.NewCollection(id, description, stac.GlobalExtent())
				c.Title = title
				cat = c
			default:
				return fmt.Errorf("unknown kind %q (want catalog or collection)", kind)
			}

			cat.SetIO(stacio.NewDefault())
			layout := stac.BestPracticesLayout{}
			selfHref := layout.CatalogHref(cat, filepath.ToSlash(dir), true)
			if err := cat.SetSelfHref(selfHref); err != nil {
				return err
			}

			p := newProgress(logger)
			if err := cat.Save(ctx, stac.CatalogType(catalogType)); err != nil {
				return err
			}

			printSuccess("Created %s %s", kind, id)
			printFile(selfHref)
			p.done(fmt.Sprintf("Wrote %s", selfHref))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "object id (default: random UUID)")
	cmd.Flags().StringVar(&title, "title", "", "human-readable title")
	cmd.Flags().StringVar(&description, "description", "A STAC catalog", "human-readable description")
	cmd.Flags().StringVar(&kind, "kind", "catalog", "what to create: catalog or collection")
	cmd.Flags().StringVar(&catalogType, "catalog-type", "", "save style (default from config)")
	return cmd
}
