// Package database opens the sqlite file behind accounts and daily results and
// applies the embedded schema migrations. Game sessions and their attempts
// never reach it.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Open opens path, creating it and its directory if missing, with WAL
// journaling, a busy timeout and foreign keys on.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

// selfManaged matches scripts that must not run inside an outer transaction.
var selfManaged = regexp.MustCompile(`(?i)BEGIN\s+TRANSACTION|PRAGMA\s+FOREIGN_KEYS\s*=\s*OFF`)

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Migrate applies the top-level *.sql files of fsys in name order. Each
// applied name is recorded in _migrations and skipped on later runs; the first
// failing script stops the run.
func Migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	names, err := fs.Glob(fsys, "*.sql") // sorted
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	for _, name := range names {
		done, err := applied(db, name)
		if err != nil {
			return err
		}
		if done {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := apply(db, name, string(script)); err != nil {
			return err
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

func applied(db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("query _migrations: %w", err)
	}
}

func apply(db *sql.DB, name, script string) error {
	run := func(x execer) error {
		if _, err := x.Exec(script); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := x.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		return nil
	}
	if selfManaged.MatchString(script) {
		return run(db)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := run(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}
