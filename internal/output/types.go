// internal/output/types.go

// Package output writes the finished snapshot: always to the JSON snapshot
// file, and additionally to any configured publish targets (SQLite archive,
// PostgreSQL, MySQL, MongoDB, Excel export).
package output

import (
	"context"

	"github.com/valpere/StageScrapexter/pkg/types"
)

// Writer persists one snapshot to a single target.
type Writer interface {
	// Name identifies the target in logs and metrics.
	Name() string

	// Write persists the snapshot.
	Write(ctx context.Context, snapshot *types.Snapshot) error

	// Close releases the target's resources.
	Close() error
}
