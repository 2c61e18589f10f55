package main

import (
	"github.com/spf13/cobra"

	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, logger, err := connect(cmd)
		if err != nil {
			return err
		}

		if err := postgres.AutoMigrate(db); err != nil {
			return err
		}
		logger.Info("database schema migrated", "tables", len(postgres.AllModels()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
