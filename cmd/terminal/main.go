// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// The roomsync terminal is the operator-side allocation tool: scan a
// badge, pick a room with live occupancy, and reconcile the pending
// ledger to the server in one idempotent batch.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "roomsync-terminal",
		Short: "Operator terminal for hostel room allocation",
		Long: `The roomsync terminal scans participant badges, allocates hostel rooms
against live capacity, and keeps every allocation in a local pending
ledger until the server confirms persistence of the synced batch.`,
		Version: version,
	}

	home, _ := os.UserHomeDir()
	rootCmd.PersistentFlags().StringVar(&opts.apiBase, "api",
		envOr("ROOMSYNC_API", "http://localhost:3001"), "Roomsync API base URL")
	rootCmd.PersistentFlags().StringVar(&opts.ledgerPath, "ledger",
		envOr("ROOMSYNC_LEDGER", filepath.Join(home, ".roomsync", "pending.json")),
		"Pending ledger file")
	rootCmd.PersistentFlags().StringVar(&opts.reportDir, "reports",
		envOr("ROOMSYNC_REPORTS", filepath.Join(home, ".roomsync", "reports")),
		"Directory for printable allocation reports")

	rootCmd.AddCommand(newAllocateCmd(&opts))
	rootCmd.AddCommand(newSyncCmd(&opts))
	rootCmd.AddCommand(newStatusCmd(&opts))
	rootCmd.AddCommand(newRoomsCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
