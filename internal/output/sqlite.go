// internal/output/sqlite.go
package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// SQLiteWriter archives snapshot runs in a local database: one row per run
// and one upserted row per production, keeping the full JSON payload for
// downstream consumers.
type SQLiteWriter struct {
	db    *sql.DB
	table string
}

// NewSQLiteWriter opens (and if needed creates) the archive database.
func NewSQLiteWriter(cfg config.SQLiteConfig) (*SQLiteWriter, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}
	table := cfg.Table
	if table == "" {
		table = "productions"
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	writer := &SQLiteWriter{db: db, table: table}
	if err := writer.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return writer, nil
}

// Name implements Writer.
func (w *SQLiteWriter) Name() string { return "sqlite" }

// ensureSchema creates the archive tables if they do not exist.
func (w *SQLiteWriter) ensureSchema() error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			generated_at TEXT NOT NULL,
			item_count INTEGER NOT NULL
		)`, w.table),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			next_relevant_date TEXT,
			payload TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`, w.table),
	}

	for _, stmt := range statements {
		if _, err := w.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create SQLite schema: %w", err)
		}
	}

	return nil
}

// Write records the run and upserts every production inside one
// transaction.
func (w *SQLiteWriter) Write(ctx context.Context, snapshot *types.Snapshot) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin SQLite transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s_runs (generated_at, item_count) VALUES (?, ?)", w.table),
		snapshot.Meta.GeneratedAt, snapshot.Meta.Count,
	); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, title, next_relevant_date, payload, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			next_relevant_date = excluded.next_relevant_date,
			payload = excluded.payload,
			updated_at = excluded.updated_at`, w.table))
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, item := range snapshot.Items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal production %s: %w", item.ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			item.ID, item.Title, nullableString(item.NextRelevantDate),
			string(payload), snapshot.Meta.GeneratedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert production %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit SQLite transaction: %w", err)
	}

	return nil
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}

// nullableString maps an optional string to a driver-friendly value.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// validateIdentifier rejects table names that cannot be interpolated into
// DDL safely.
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	for _, r := range name {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("invalid table name %q", name)
		}
	}
	if strings.ContainsAny(name[:1], "0123456789") {
		return fmt.Errorf("table name %q cannot start with a digit", name)
	}
	return nil
}
