package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/config"
)

var seedData bool

var initDBCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the database schema (and optionally seed demo data)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initDB()
	},
}

func init() {
	initDBCmd.Flags().BoolVar(&seedData, "seed", false, "load the demo reference dataset")
	rootCmd.AddCommand(initDBCmd)
}

func initDB() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	log.Printf("schema created (%s backend)", cfg.DBBackend)

	if seedData {
		if err := store.Seed(ctx); err != nil {
			return err
		}
		log.Printf("demo data seeded")
	}
	return nil
}
