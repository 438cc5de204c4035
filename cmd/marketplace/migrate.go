package main

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/persistence/postgres"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger := cfg.Logger.NewLogger()

			ctx := context.Background()
			db, err := postgres.Connect(ctx, &cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			applied, err := db.Migrate(ctx)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				logger.Info("schema up to date")
				return nil
			}
			logger.Info("migrations applied", "versions", applied)
			return nil
		},
	}
}
