package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wb-service/portal/backend/config"
	"github.com/wb-service/portal/backend/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "data", "portal.db"),
	}

	db, err := Open(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, RunMigrations(db, zerolog.Nop()))
	// second run is a no-op
	require.NoError(t, RunMigrations(db, zerolog.Nop()))

	for _, table := range []string{"departments", "employees", "profiles", "profile_projects", "profile_vacations", "profile_change_logs", "files", "auth_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	dept := models.Department{Name: "Engineering"}
	require.NoError(t, db.Create(&dept).Error)
	assert.NotZero(t, dept.ID)

	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestHealthCheckAfterClose(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "portal.db")}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Close(db))

	assert.Error(t, HealthCheck(context.Background(), db))
}

func TestMigrationFiles(t *testing.T) {
	names, err := MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		assert.False(t, strings.HasSuffix(name, "_rollback.sql"), name)

		_, err := Migrations.ReadFile("migrations/" + RollbackFile(name))
		assert.NoError(t, err, "missing rollback for %s", name)
	}
	assert.Equal(t, "000001_init.sql", names[0])
}

func TestRollbackFile(t *testing.T) {
	assert.Equal(t, "000002_avatars_rollback.sql", RollbackFile("000002_avatars.sql"))
}

func TestInitMigrationCreatesSchema(t *testing.T) {
	content, err := Migrations.ReadFile("migrations/000001_init.sql")
	require.NoError(t, err)

	sql := string(content)
	for _, table := range []string{"departments", "employees", "profiles", "profile_projects", "profile_vacations", "profile_change_logs", "files", "auth_tokens"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table, table)
	}
}
