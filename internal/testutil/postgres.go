//go:build integration

package testutil

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
)

// PostgresContainer é um PostgreSQL descartável para testes de integração
type PostgresContainer struct {
	DB        *gorm.DB
	container *tcpostgres.PostgresContainer
}

// StartPostgres sobe o container, conecta e aplica o schema
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("crewup_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), postgres.GormConfig(logger.Silent))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := postgres.AutoMigrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &PostgresContainer{DB: db, container: container}, nil
}

// Terminate fecha a conexão e remove o container
func (p *PostgresContainer) Terminate(ctx context.Context) error {
	CloseDB(p.DB)
	return p.container.Terminate(ctx)
}
