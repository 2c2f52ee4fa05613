package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/config"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/repository"
)

var rootCmd = &cobra.Command{
	Use:          "apsrtc",
	Short:        "APSRTC live bus tracking service",
	Long:         "Route search, timetables and live vehicle tracking for the APSRTC fleet",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore creates the storage backend the configuration selects.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.DBBackend {
	case config.BackendPostgres:
		return repository.NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.BackendSQLite:
		return repository.NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.DBBackend)
	}
}
