package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

//go:embed *.sql
var migrationFiles embed.FS

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"

	advisoryLockID int64 = 725130441
)

// ErrNothingToRevert is returned by Revert when no migration has been applied.
var ErrNothingToRevert = errors.New("no applied migrations")

// Apply runs embedded up migrations in filename order. Each migration runs in
// its own transaction and is recorded in schema_migrations.
func Apply(ctx context.Context, db *gorm.DB) error {
	names, err := migrationNames()
	if err != nil {
		return err
	}

	return withLock(ctx, db, func(conn *gorm.DB) error {
		for _, name := range names {
			var applied bool
			if err := conn.Raw(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = ?)`, name).
				Row().Scan(&applied); err != nil {
				return fmt.Errorf("check migration %s: %w", name, err)
			}
			if applied {
				continue
			}

			sql, err := readMigration(name + upSuffix)
			if err != nil {
				return err
			}
			if err := conn.Transaction(func(tx *gorm.DB) error {
				if sql != "" {
					if err := tx.Exec(sql).Error; err != nil {
						return fmt.Errorf("exec migration %s: %w", name, err)
					}
				}
				if err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES (?)`, name).Error; err != nil {
					return fmt.Errorf("record migration %s: %w", name, err)
				}
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Revert undoes the most recently applied migration and returns its name.
func Revert(ctx context.Context, db *gorm.DB) (string, error) {
	var reverted string
	err := withLock(ctx, db, func(conn *gorm.DB) error {
		var names []string
		if err := conn.Raw(`SELECT name FROM schema_migrations ORDER BY name DESC LIMIT 1`).
			Scan(&names).Error; err != nil {
			return fmt.Errorf("find last migration: %w", err)
		}
		if len(names) == 0 {
			return ErrNothingToRevert
		}
		name := names[0]

		sql, err := readMigration(name + downSuffix)
		if err != nil {
			return err
		}
		if err := conn.Transaction(func(tx *gorm.DB) error {
			if sql != "" {
				if err := tx.Exec(sql).Error; err != nil {
					return fmt.Errorf("revert migration %s: %w", name, err)
				}
			}
			return tx.Exec(`DELETE FROM schema_migrations WHERE name = ?`, name).Error
		}); err != nil {
			return err
		}
		reverted = name
		return nil
	})
	return reverted, err
}

// withLock pins one connection, holds a session advisory lock on it and makes
// sure the bookkeeping table exists before calling fn.
func withLock(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec(`SELECT pg_advisory_lock(?)`, advisoryLockID).Error; err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		defer conn.Session(&gorm.Session{Context: context.Background()}).
			Exec(`SELECT pg_advisory_unlock(?)`, advisoryLockID)

		if err := conn.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`).Error; err != nil {
			return fmt.Errorf("ensure schema_migrations: %w", err)
		}
		return fn(conn)
	})
}

func migrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), upSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), upSuffix))
	}
	sort.Strings(names)
	return names, nil
}

func readMigration(file string) (string, error) {
	b, err := migrationFiles.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read migration %s: %w", file, err)
	}
	return strings.TrimSpace(string(b)), nil
}
