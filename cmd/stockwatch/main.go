// Package main is the entry point for the stockwatch CLI.
//
// stockwatch can be run either as a library (SDK) or as a standalone
// binary with YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	stockwatch run -c config.yaml       # Start watching
//	stockwatch validate -c config.yaml  # Validate configuration
//	stockwatch version                  # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "stockwatch",
	Short: "A restock watcher for vendor product endpoints",
	Long: `stockwatch polls a vendor product endpoint at a fixed interval and
notifies you the moment a product variant comes back in stock.

Notifications fire exactly once per out-of-stock to in-stock transition,
via a native desktop popup and/or a Discord-compatible webhook.

Quick start:
  1. Create a config file (stockwatch.yaml)
  2. Run: stockwatch run -c stockwatch.yaml

Example config:
  poll_interval: 5m
  product:
    name: Charcoal Grey 650ml
    url: https://shop.example.com/api/availability
    cart_id: ${CART_ID}
    bottle_handle: bottle-tritan-650ml-charcoal-grey-us
    flavor_handle: 3-pod-variety-pack-vivid-vibes-udb
    country: it
    language: en
  notify:
    desktop:
      enabled: true
    discord:
      webhook_url: ${DISCORD_WEBHOOK_URL}`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this stockwatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stockwatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
