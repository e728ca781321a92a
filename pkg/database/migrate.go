package database

import (
	"context"
	"embed"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// MigrationsDir is the goose migrations directory inside the embedded filesystem.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SetupGoose points goose at the embedded migrations and routes its output through zap.
func SetupGoose(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{log: logger.Sugar()})
	return goose.SetDialect("postgres")
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if err := SetupGoose(logger); err != nil {
		return err
	}
	return goose.UpContext(ctx, db.DB, MigrationsDir)
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(strings.TrimSuffix(format, "\n"), v...)
}
