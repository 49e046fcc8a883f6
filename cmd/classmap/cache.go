package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classmap/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the render cache",
	Long: `Inspect or reset the render cache.

The cache stores compressed rendered diagrams keyed by source content, so
repeat runs over unchanged files skip parsing and rendering.

Examples:
  classmap cache stats
  classmap cache clear`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts and payload size",
	Run:   runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached renders and run records",
	Run:   runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openStore opens the cache at the configured location, exiting on failure.
func openStore(cmd *cobra.Command) *cache.Store {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	store, err := cache.Open(cfg.Cache.Dir, newLoggerFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runCacheStats(cmd *cobra.Command, args []string) {
	store := openStore(cmd)
	defer store.Close()

	stats, err := store.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cache stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Entries:       %d\n", stats.Entries)
	fmt.Printf("Runs recorded: %d\n", stats.Runs)
	fmt.Printf("Payload bytes: %d\n", stats.PayloadBytes)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	store := openStore(cmd)
	defer store.Close()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing cache: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Cache cleared")
}
