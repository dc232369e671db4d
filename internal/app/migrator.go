package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator применяет SQL миграции, встроенные в бинарник
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, logger *zap.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(zap.NewStdLog(logger))
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose нужен *sql.DB; закрывать его можно, пул при этом остаётся открытым
	return &Migrator{db: stdlib.OpenDBFromPool(pool), logger: logger}, nil
}

// Run доводит схему до последней версии
func (m *Migrator) Run(ctx context.Context) error {
	before, err := m.Version(ctx)
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := m.Version(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("Schema is up to date",
		zap.Int64("from_version", before),
		zap.Int64("version", after),
	)
	return nil
}

// Down откатывает последнюю применённую миграцию
func (m *Migrator) Down(ctx context.Context) error {
	if err := goose.DownContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Info("Migration rolled back", zap.Int64("version", version))
	return nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
