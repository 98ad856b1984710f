package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"storage-gateway/core/logger"
	"storage-gateway/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var contentTypeFlag string

// storageCmd groups the one-shot storage operations
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Run storage operations against the configured driver",
	Long: `Configures the storage driver from the environment and runs a single
operation: put, get, rm, exists or url.`,
}

var storagePutCmd = &cobra.Command{
	Use:   "put <key> <file>",
	Short: "Store a local file (\"-\" reads stdin) at key",
	Args:  cobra.ExactArgs(2),
	RunE: withStorage(func(ctx context.Context, cmd *cobra.Command, store *storage.Storage, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[1] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[1])
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}
		if err := store.Put(ctx, args[0], data, contentTypeFlag); err != nil {
			return err
		}
		url, err := store.PublicURL(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	}),
}

var storageGetCmd = &cobra.Command{
	Use:   "get <key> [out]",
	Short: "Write the object at key to a file or stdout",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withStorage(func(ctx context.Context, cmd *cobra.Command, store *storage.Storage, args []string) error {
		data, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 || args[1] == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(args[1], data, 0o644)
	}),
}

var storageRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete the object at key",
	Args:  cobra.ExactArgs(1),
	RunE: withStorage(func(ctx context.Context, cmd *cobra.Command, store *storage.Storage, args []string) error {
		return store.Delete(ctx, args[0])
	}),
}

var storageExistsCmd = &cobra.Command{
	Use:   "exists <key>",
	Short: "Print whether an object is stored at key",
	Args:  cobra.ExactArgs(1),
	RunE: withStorage(func(ctx context.Context, cmd *cobra.Command, store *storage.Storage, args []string) error {
		ok, err := store.Exists(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		return nil
	}),
}

var storageURLCmd = &cobra.Command{
	Use:   "url <key>",
	Short: "Print the public URL of key",
	Args:  cobra.ExactArgs(1),
	RunE: withStorage(func(ctx context.Context, cmd *cobra.Command, store *storage.Storage, args []string) error {
		url, err := store.PublicURL(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	}),
}

type storageRunner func(ctx context.Context, cmd *cobra.Command, store *storage.Storage, args []string) error

// withStorage configures the facade before run and closes it afterwards.
func withStorage(run storageRunner) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Keep stdout clean for get; lifecycle logs go to stderr only on warnings.
		logg, err := logger.New(&logger.Config{Level: "warn", Format: "console"})
		if err != nil {
			logg = zap.NewNop()
		}
		defer logg.Sync()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		store, err := openStorage(ctx, storageConfig(cfg), logg)
		if err != nil {
			return err
		}
		defer store.Close()

		return run(ctx, cmd, store, args)
	}
}

func init() {
	storagePutCmd.Flags().StringVar(&contentTypeFlag, "content-type", "", "content type (defaults to the key extension)")

	storageCmd.AddCommand(storagePutCmd, storageGetCmd, storageRmCmd, storageExistsCmd, storageURLCmd)
	RootCmd.AddCommand(storageCmd)
}
