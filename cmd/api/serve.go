package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/spf13/cobra"

	"github.com/mandalnilabja/llmshim/internal/app"
	"github.com/mandalnilabja/llmshim/internal/config"
	"github.com/mandalnilabja/llmshim/internal/metrics"
	"github.com/mandalnilabja/llmshim/internal/provider"
	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/tokenizer"
	"github.com/mandalnilabja/llmshim/internal/transport/http/handler"
	"github.com/mandalnilabja/llmshim/internal/transport/http/middleware/ratelimit"
)

type serveOptions struct {
	configPath string
	envFile    string
	port       string
	verbose    bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to configuration file (default: data dir config.toml)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to environment file (default: .env if present)")
	cmd.Flags().StringVar(&opts.port, "port", "", "Address to listen on, e.g. :8080")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}

	if opts.configPath == "" {
		if err := config.EnsureConfigFile(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create config file: %v\n", err)
		}
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.port != "" {
		cfg.ServerPort = opts.port
	}

	logger := setupLogger(os.Stdout, cfg.LogLevel, opts.verbose)

	if err := config.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1e5,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	defer cache.Close()

	providers := provider.NewProviders(cfg)
	router := provider.NewRouter(providers, cfg)

	repo := handler.NewRepo(handler.Deps{
		Router:        router,
		Storage:       store,
		Tokenizer:     tokenizer.New(),
		Cache:         cache,
		UsageCacheTTL: cfg.UsageCacheTTL,
		Metrics:       metrics.NewCollector(logger),
		Logger:        logger,
	})

	h := app.NewRouter(repo, app.RouterOptions{
		Logger:  logger,
		Limiter: ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	printStartupBanner(cfg, names)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.NewServer(cfg, h, logger).Run(ctx)
}
