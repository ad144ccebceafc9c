// internal/output/mysql.go
package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// MySQLWriter publishes productions to a MySQL table with JSON payloads,
// upserting by id.
type MySQLWriter struct {
	db    *sql.DB
	table string
}

// NewMySQLWriter connects to the configured database and prepares the
// target table.
func NewMySQLWriter(cfg config.DatabaseConfig) (*MySQLWriter, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("MySQL DSN is required")
	}
	table := cfg.Table
	if table == "" {
		table = "productions"
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	writer := &MySQLWriter{db: db, table: table}
	if err := writer.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return writer, nil
}

// Name implements Writer.
func (w *MySQLWriter) Name() string { return "mysql" }

func (w *MySQLWriter) ensureSchema() error {
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ("+
		"id VARCHAR(64) PRIMARY KEY, "+
		"title TEXT NOT NULL, "+
		"next_relevant_date VARCHAR(32) NULL, "+
		"payload JSON NOT NULL, "+
		"updated_at DATETIME NOT NULL"+
		") CHARACTER SET utf8mb4", w.table)

	if _, err := w.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create MySQL schema: %w", err)
	}
	return nil
}

// Write upserts every production inside one transaction.
func (w *MySQLWriter) Write(ctx context.Context, snapshot *types.Snapshot) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin MySQL transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (id, title, next_relevant_date, payload, updated_at) "+
			"VALUES (?, ?, ?, ?, NOW()) "+
			"ON DUPLICATE KEY UPDATE "+
			"title = VALUES(title), "+
			"next_relevant_date = VALUES(next_relevant_date), "+
			"payload = VALUES(payload), "+
			"updated_at = NOW()", w.table))
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
			item.ID, item.Title, nullableString(item.NextRelevantDate), payload,
		); err != nil {
			return fmt.Errorf("failed to upsert production %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit MySQL transaction: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (w *MySQLWriter) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}
