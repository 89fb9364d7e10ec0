// Package dbtest opens migrated in-memory SQLite databases for repository
// and router tests.
package dbtest

import (
	"testing"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/db"
	"finance-tracker-go/pkg/logger"
	"gorm.io/gorm"
)

func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.Open(config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   "silent",
	}, logger.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if _, err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return conn
}
