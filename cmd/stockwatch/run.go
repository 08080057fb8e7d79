package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelius/stockwatch"
	"github.com/avelius/stockwatch/config"
)

const shutdownTimeout = 10 * time.Second

// newLogger creates a JSON logger for CLI use. Operational logs go to
// stderr; the colored status lines own stdout.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// runCmd starts the stockwatch loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start watching the configured product",
	Long: `Start the stockwatch loop.

The watcher will:
  - Load configuration from the specified YAML file
  - Check the product immediately, then at the configured interval
  - Dispatch notifications on every out-of-stock to in-stock transition

The watcher runs until interrupted (Ctrl+C) or receives SIGTERM. With
stop_on_restock set, it exits after the first restock notification.

Example:
  stockwatch run -c config.yaml
  stockwatch run --config /etc/stockwatch/config.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"product", cfg.Product.Name,
		"poll_interval", cfg.PollInterval.Duration().String(),
		"notifiers", config.NotifierCount(cfg),
	)

	product, err := config.BuildProduct(cfg)
	if err != nil {
		return fmt.Errorf("failed to build product: %w", err)
	}

	opts, err := config.BuildOptions(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}

	watcher, err := stockwatch.New(product, opts...)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start the watcher - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Start(ctx)
	}()

	// wait for the watcher to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("watcher error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("watcher error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
