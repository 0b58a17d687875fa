package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"semnet-explorer/backend/internal/cache"
	"semnet-explorer/backend/internal/services"
	"semnet-explorer/backend/pkg/config"
	"semnet-explorer/backend/pkg/logger"
)

// options are the persistent flags shared by every subcommand
type options struct {
	store      string
	sqlitePath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "semnet",
		Short: "Analyze sentences and explore them as a semantic network",
		Long: `semnet tags sentences with a naive subject/verb/object/adjective heuristic,
stores them and prints the similarity or grammar network of recent sentences as JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env := "production"
			if opts.verbose {
				env = "development"
			}
			return logger.Init(env)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "Store backend override (neo4j or sqlite)")
	cmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database path override")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newAnalyzeCmd(),
		newAddCmd(opts),
		newRecentCmd(opts),
		newNetworkCmd(opts),
		newTermsCmd(opts),
		newRelatedCmd(opts),
	)

	return cmd
}

// loadConfig reads the environment and applies flag overrides
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.Read()
	if o.store != "" {
		cfg.StoreBackend = o.store
	}
	if o.sqlitePath != "" {
		cfg.SQLitePath = o.sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// openStore connects to the configured store and makes sure its schema exists
func (o *options) openStore(ctx context.Context) (services.SchemaStore, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := services.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, cfg, nil
}

// withService runs fn against a service backed by the configured store
func (o *options) withService(ctx context.Context, fn func(*services.SentenceService) error) error {
	store, cfg, err := o.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := services.NewSentenceService(store, services.EmbedderFromConfig(cfg), cache.NewNetworkCache(0))
	return fn(svc)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
