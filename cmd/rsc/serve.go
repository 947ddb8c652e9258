package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rsc/internal/blog"
	"github.com/vango-dev/rsc/internal/config"
	"github.com/vango-dev/rsc/internal/logging"
	"github.com/vango-dev/rsc/internal/otel"
	"github.com/vango-dev/rsc/pkg/markdown"
	"github.com/vango-dev/rsc/pkg/resolve"
	"github.com/vango-dev/rsc/pkg/server"
	"github.com/vango-dev/rsc/pkg/store"
)

type serveFlags struct {
	addr      string
	postsDir  string
	storeKind string
	metrics   bool
	dev       bool
}

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog server",
		Long: `Start the blog server.

Settings come from rsc.yaml, then RSC_* environment variables, then flags.

Examples:
  rsc serve
  rsc serve --addr=:3000 --store=memory
  rsc serve --config=deploy/rsc.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.addr, "addr", "a", "", "Listen address (default from rsc.yaml)")
	cmd.Flags().StringVar(&flags.postsDir, "posts", "", "Directory of markdown posts")
	cmd.Flags().StringVar(&flags.storeKind, "store", "", "Comment store: file, memory, redis or s3")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Expose /metrics")
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "Development mode: disable client script caching")
	return cmd
}

// apply overrides cfg with the flags that were set explicitly.
func (f serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.postsDir != "" {
		cfg.Blog.PostsDir = f.postsDir
	}
	if f.storeKind != "" {
		cfg.Store.Kind = f.storeKind
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Server.Metrics = f.metrics
	}
	if cmd.Flags().Changed("dev") {
		cfg.Server.DevMode = f.dev
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	slog.SetDefault(logger)

	shutdown, err := otel.Setup(ctx, otel.Config{
		Endpoint: cfg.Tracing.Endpoint,
		Service:  cfg.Tracing.Service,
		Insecure: cfg.Tracing.Insecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	comments, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer comments.Close()

	posts := store.NewFSPosts(os.DirFS(cfg.PostsPath()))
	b := blog.New(posts, comments,
		blog.WithAuthor(cfg.Blog.Author),
		blog.WithTitle(cfg.Blog.Title),
		blog.WithLogger(logger),
		blog.WithConverter(markdown.NewConverter(markdown.WithLogger(logger))),
	)

	srv := server.New(server.Config{
		DevMode:         cfg.Server.DevMode,
		Metrics:         cfg.Server.Metrics,
		Logger:          logger,
		Resolver:        resolve.New(resolve.WithLogger(logger)),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, b.Route, b)

	success(os.Stdout, "Serving %s on %s (store: %s)", cfg.PostsPath(), cfg.Server.Addr, cfg.Store.Kind)
	return srv.Run(ctx, cfg.Server.Addr)
}

// openStore builds the comment backend selected by cfg.
func openStore(ctx context.Context, cfg *config.Config) (store.CommentStore, error) {
	switch cfg.Store.Kind {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreFile:
		return store.NewFileStore(cfg.CommentsPath()), nil
	case config.StoreRedis:
		rc := cfg.Store.Redis
		s := store.NewRedisStore(rc.Addr, rc.Password, rc.DB, store.WithPrefix(rc.Prefix))
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("redis %s: %w", rc.Addr, err)
		}
		return s, nil
	case config.StoreS3:
		sc := cfg.Store.S3
		return store.NewS3Store(store.NewS3Client(sc.Region, sc.Endpoint), sc.Bucket, sc.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}
