package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/stac"
	"github.com/stacforge/gostac/pkg/validate"
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	var (
		noCache   bool
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "validate <href>",
		Short: "Check objects against their JSON schemas",
		Long: `Validate checks the object at the given href against the core STAC
schema for its type plus the schema of every extension it declares. With
--recursive the whole catalog tree is validated; every failure is reported
before the command exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			io := newIO(ctx, cfg, noCache)
			obj, err := stac.FromFile(ctx, args[0], io, nil)
			if err != nil {
				return err
			}

			validator := validate.NewSchemaValidator()
			p := newProgress(logger)

			failed := 0
			checked := 0
			check := func(o stac.Object) {
				checked++
				if err := validator.Validate(ctx, o); err != nil {
					failed++
					var vErr *validate.Error
					if errors.As(err, &vErr) {
						printError("%s", vErr.Error())
						for _, f := range vErr.Failures {
							printDetail("%s: %v", f.SchemaURI, f.Err)
						}
					} else {
						printError("%s: %v", o.ID(), err)
					}
					return
				}
				logger.Debugf("%s is valid", o.ID())
			}

			if recursive {
				cat, ok := obj.(stac.Container)
				if !ok {
					return fmt.Errorf("--recursive needs a catalog, got a %s", obj.Type())
				}
				err = cat.Walk(ctx, func(c stac.Container, _ []stac.Container, items []*stac.Item) error {
					check(c)
					for _, item := range items {
						check(item)
					}
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				check(obj)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d objects failed validation", failed, checked)
			}
			printSuccess("All %d objects valid", checked)
			p.done(fmt.Sprintf("Validated %d objects", checked))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "validate the whole tree")
	return cmd
}
