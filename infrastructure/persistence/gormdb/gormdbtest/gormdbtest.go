// Package gormdbtest opens migrated in-memory SQLite databases for tests.
package gormdbtest

import (
	"fmt"
	"testing"

	"foodorder/infrastructure/persistence/gormdb"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns a private, migrated database that is closed when t finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &gormdb.Config{
		Type:     "sqlite",
		Database: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: "silent",
	}
	db, err := cfg.Connect()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gormdb.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = gormdb.Close(db) })
	return db
}
