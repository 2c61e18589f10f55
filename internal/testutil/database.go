// Package testutil reúne fixtures compartilhadas pelos testes de services, repositories e handlers.
package testutil

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
)

// NewSQLiteDB abre um banco SQLite em memória isolado e aplica o schema.
// Uma única conexão serializa as transações, como o lock de linha faria no PostgreSQL.
func NewSQLiteDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), postgres.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// CloseDB fecha a conexão subjacente
func CloseDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
