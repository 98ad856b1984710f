package cmd

import (
	"fmt"
	"os"

	"storage-gateway/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "storage-gateway",
	Short: "Storage Gateway Service",
	Long: `Storage Gateway serves files from a single configured backend:
local disk, an S3 compatible store (AWS, MinIO) or Google Cloud Storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config (ISO8601 timestamps) reads better in a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
