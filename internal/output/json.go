// internal/output/json.go
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valpere/StageScrapexter/pkg/types"
)

// JSONWriter writes the snapshot document to a file. The file is replaced
// atomically so a reader never observes a half-written snapshot.
type JSONWriter struct {
	filename string
}

// NewJSONWriter creates a JSON snapshot writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("snapshot filename cannot be empty")
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	return &JSONWriter{filename: filename}, nil
}

// Name implements Writer.
func (w *JSONWriter) Name() string { return "json" }

// Write serializes the snapshot with indentation and renames it into place.
func (w *JSONWriter) Write(_ context.Context, snapshot *types.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.filename), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(snapshot); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), w.filename); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	return nil
}

// Close implements Writer; the JSON writer holds no resources between
// writes.
func (w *JSONWriter) Close() error { return nil }
