package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kozu/internal/server"
	"github.com/matzehuels/kozu/pkg/gallery"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr     string
	mongoURI string
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compositions and the image gallery over HTTP",
		Long: `Serve starts the HTTP API. Compositions are rendered on request; saved images
go to MongoDB when a mongo URI is configured and to memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config: :8080)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for the gallery (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, o serveOpts) error {
	cfg := c.Config.Server
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if o.mongoURI != "" {
		cfg.MongoURI = o.mongoURI
	}

	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.newGallery(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}

	srv := server.New(runner, store, c.Logger)
	defer srv.Close()

	printSuccess("Serving on %s", StyleHighlight.Render(cfg.Addr))
	printDetail("Cache: %s", c.Config.Cache.Backend)
	return srv.Run(ctx, server.Config{
		Addr:         cfg.Addr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

func (c *CLI) newGallery(ctx context.Context, uri, database string) (gallery.Store, error) {
	if uri == "" {
		printDetail("Gallery: in memory")
		return gallery.NewMemoryStore(), nil
	}
	store, err := gallery.NewMongoStore(ctx, uri, database)
	if err != nil {
		return nil, err
	}
	printDetail("Gallery: mongodb/%s", database)
	return store, nil
}
