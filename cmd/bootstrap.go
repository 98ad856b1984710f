package cmd

import (
	"context"
	"fmt"

	"storage-gateway/core/config"
	"storage-gateway/core/storage"

	"go.uber.org/zap"
)

// configPath is the directory searched for the .env file.
var configPath = "."

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// storageConfig returns the storage settings with the local public URL
// defaulting to the mount the server serves stored objects under.
func storageConfig(cfg *config.Config) storage.Config {
	sc := cfg.Storage
	if sc.Driver == storage.DriverLocal && sc.Connection.PublicURL == "" {
		sc.Connection.PublicURL = cfg.Server.Mount()
	}
	return sc
}

// openStorage returns a facade configured from cfg.
func openStorage(ctx context.Context, cfg storage.Config, logg *zap.Logger, opts ...storage.Option) (*storage.Storage, error) {
	store := storage.New(append([]storage.Option{storage.WithLogger(logg)}, opts...)...)
	if err := store.Configure(ctx, cfg); err != nil {
		return nil, fmt.Errorf("configure %s storage: %w", cfg.Driver, err)
	}
	return store, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing the .env file")
}
