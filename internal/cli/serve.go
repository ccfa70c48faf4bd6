package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/stac"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var (
		noCache bool
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "serve <href>",
		Short: "Serve a catalog tree over HTTP",
		Long: `Serve resolves the catalog at the given href, rewrites its hrefs under
the listen address and serves every object as JSON. Links in the served
documents are absolute URLs pointing back at the server, so any STAC client
can browse the tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}

			cat, err := loadCatalog(ctx, args[0], cfg, noCache)
			if err != nil {
				return err
			}

			baseURL := "http://" + addr
			index, err := buildServeIndex(ctx, cat, baseURL)
			if err != nil {
				return err
			}
			logger.Infof("indexed %d objects", len(index))

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)
			r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
				doc, ok := index[req.URL.Path]
				if !ok {
					http.NotFound(w, req)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(doc)
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			printSuccess("Serving %s", cat.ID())
			printFile(baseURL + "/catalog.json")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// buildServeIndex normalizes the tree under baseURL and serializes every
// object, keyed by URL path.
func buildServeIndex(ctx context.Context, cat stac.Container, baseURL string) (map[string][]byte, error) {
	if err := cat.NormalizeHrefs(ctx, baseURL, nil); err != nil {
		return nil, err
	}

	index := map[string][]byte{}
	add := func(obj stac.Object) error {
		u, err := url.Parse(obj.SelfHref())
		if err != nil {
			return fmt.Errorf("parse self href of %s: %w", obj.ID(), err)
		}
		doc, err := json.MarshalIndent(obj.ToDict(true), "", "  ")
		if err != nil {
			return err
		}
		index[u.Path] = doc
		return nil
	}

	err := cat.Walk(ctx, func(c stac.Container, _ []stac.Container, items []*stac.Item) error {
		if err := add(c); err != nil {
			return err
		}
		for _, item := range items {
			if err := add(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}
