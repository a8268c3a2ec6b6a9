package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/m04kA/venuebook/internal/config"
)

// OpenTestSQLite создает SQLite базу во временном каталоге теста и применяет миграции
func OpenTestSQLite(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "venuebook_test.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(ctx, db, config.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
