package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Eursukkul/ticketing-service/migrations"
	"github.com/Eursukkul/ticketing-service/pkg/database"
	"gorm.io/gorm"
)

// DSN builds the test database DSN from TEST_DB_* variables.
func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "ticketing_test_db"),
	)
}

// OpenDB connects to the test database or skips the test when it is not reachable.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewPostgresDB(DSN(), database.PoolConfig{MaxOpenConns: 5})
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// ResetSchema drops every table, reapplies all migrations and returns the
// connection, so each test starts from an empty database with fresh sequences.
func ResetSchema(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenDB(t)
	DropAll(t, db)
	if err := migrations.Apply(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func DropAll(t *testing.T, db *gorm.DB) {
	t.Helper()

	for _, stmt := range []string{
		"DROP TABLE IF EXISTS ticket_details",
		"DROP TABLE IF EXISTS tickets",
		"DROP TABLE IF EXISTS events",
		"DROP TABLE IF EXISTS schema_migrations",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
