// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/krishkalaria12/blogly/config"
	"github.com/krishkalaria12/blogly/database"
	"gorm.io/gorm"
)

// Config describes a private in-memory database. A single pooled connection
// keeps every statement on the same in-memory instance.
func Config() *config.Config {
	return &config.Config{
		DBDriver:     config.DriverSQLite,
		DatabaseURL:  ":memory:",
		DBLogLevel:   "silent",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}
}

// New returns a migrated, empty database closed at the end of the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(Config(), nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
