package db

import (
	"database/sql"
	"embed"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/config"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending schema migrations.
func Migrate(cfg config.Config) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	sqlDB, err := sql.Open("pgx", cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return goose.Up(sqlDB, "migrations")
}
