package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/infrastructure/config"
	"github.com/rafabene/crewup-backend/internal/infrastructure/logging"
	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
)

const app = "crewctl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "crewctl runs maintenance tasks against the CrewUp database",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "overrides LOG_LEVEL")
}

// connect carrega a configuração do ambiente e abre o banco sem migrar
func connect(cmd *cobra.Command) (*gorm.DB, ports.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	logger := logging.NewSlogLogger(level)

	dbCfg := cfg.Database
	dbCfg.AutoMigrate = false
	db, err := postgres.NewDatabaseConnection(&dbCfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, logger, nil
}
