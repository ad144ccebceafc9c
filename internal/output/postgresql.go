// internal/output/postgresql.go
package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// PostgreSQLWriter publishes productions to a PostgreSQL table with JSONB
// payloads, upserting by id.
type PostgreSQLWriter struct {
	db    *sql.DB
	table string
}

// NewPostgreSQLWriter connects to the configured database and prepares the
// target table.
func NewPostgreSQLWriter(cfg config.DatabaseConfig) (*PostgreSQLWriter, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("PostgreSQL DSN is required")
	}
	table := cfg.Table
	if table == "" {
		table = "productions"
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	writer := &PostgreSQLWriter{db: db, table: table}
	if err := writer.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return writer, nil
}

// Name implements Writer.
func (w *PostgreSQLWriter) Name() string { return "postgresql" }

func (w *PostgreSQLWriter) ensureSchema() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		next_relevant_date TEXT,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, w.table)

	if _, err := w.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create PostgreSQL schema: %w", err)
	}
	return nil
}

// Write upserts every production inside one transaction.
func (w *PostgreSQLWriter) Write(ctx context.Context, snapshot *types.Snapshot) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin PostgreSQL transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, title, next_relevant_date, payload, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			next_relevant_date = EXCLUDED.next_relevant_date,
			payload = EXCLUDED.payload,
			updated_at = now()`, w.table))
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
		return fmt.Errorf("failed to commit PostgreSQL transaction: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (w *PostgreSQLWriter) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}
