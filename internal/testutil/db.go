// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tasktrackr/tasktrackr/db"
	"github.com/tasktrackr/tasktrackr/internal/config"
)

// NewDB opens a migrated SQLite store in a per-test directory.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		UseSQLite:  true,
		SQLitePath: filepath.Join(t.TempDir(), "test.sqlite3"),
		ConnMaxAge: time.Minute,
	}

	database, err := db.Open(cfg, zerolog.Nop(), false)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })

	if err := db.MigrateDatabase(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return database
}
