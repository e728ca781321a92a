package database

import (
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMigrationsCarryGooseAnnotations(t *testing.T) {
	names, err := fs.Glob(migrationFiles, MigrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		content, err := fs.ReadFile(migrationFiles, name)
		require.NoError(t, err)
		assert.Contains(t, string(content), "-- +goose Up", name)
		assert.Contains(t, string(content), "-- +goose Down", name)
	}
}

func TestSetupGooseCollectsEmbeddedMigrations(t *testing.T) {
	require.NoError(t, SetupGoose(nil))
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	migrations, err := goose.CollectMigrations(MigrationsDir, 0, goose.MaxVersion)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, int64(1), migrations[0].Version)
}

func TestGooseLoggerWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := gooseLogger{log: zap.New(core).Sugar()}

	l.Printf("OK   %s (%v)\n", "001_init.sql", "12ms")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "OK   001_init.sql (12ms)", entries[0].Message)
}
