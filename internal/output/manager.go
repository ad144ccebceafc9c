// internal/output/manager.go
package output

import (
	"context"
	"fmt"

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/internal/monitoring"
	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// Manager fans a snapshot out to the snapshot file and every configured
// publish target. The snapshot file is mandatory: its failure fails the
// write. Publish targets are best-effort; their failures are logged and
// counted but do not invalidate the run.
type Manager struct {
	snapshot Writer
	targets  []Writer
	logger   utils.Logger
	metrics  *monitoring.Metrics
}

// NewManager builds writers for the configured targets. Targets that cannot
// be constructed (unreachable database, bad path) fail construction so
// misconfiguration surfaces before a run starts.
func NewManager(cfg *config.OutputConfig, logger utils.Logger, metrics *monitoring.Metrics) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("output configuration is required")
	}
	if logger == nil {
		logger = utils.NewLogger()
	}

	snapshot, err := NewJSONWriter(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot writer: %w", err)
	}

	manager := &Manager{
		snapshot: snapshot,
		logger:   logger,
		metrics:  metrics,
	}

	if cfg.SQLite != nil {
		writer, err := NewSQLiteWriter(*cfg.SQLite)
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("failed to create SQLite writer: %w", err)
		}
		manager.targets = append(manager.targets, writer)
	}

	if cfg.PostgreSQL != nil {
		writer, err := NewPostgreSQLWriter(*cfg.PostgreSQL)
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("failed to create PostgreSQL writer: %w", err)
		}
		manager.targets = append(manager.targets, writer)
	}

	if cfg.MySQL != nil {
		writer, err := NewMySQLWriter(*cfg.MySQL)
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("failed to create MySQL writer: %w", err)
		}
		manager.targets = append(manager.targets, writer)
	}

	if cfg.MongoDB != nil {
		writer, err := NewMongoDBWriter(*cfg.MongoDB)
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("failed to create MongoDB writer: %w", err)
		}
		manager.targets = append(manager.targets, writer)
	}

	if cfg.Excel != nil {
		writer, err := NewExcelWriter(*cfg.Excel)
		if err != nil {
			manager.Close()
			return nil, fmt.Errorf("failed to create Excel writer: %w", err)
		}
		manager.targets = append(manager.targets, writer)
	}

	return manager, nil
}

// Write persists the snapshot to every target.
func (m *Manager) Write(ctx context.Context, snapshot *types.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	err := m.snapshot.Write(ctx, snapshot)
	m.metrics.ObserveOutput(m.snapshot.Name(), err)
	if err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	for _, target := range m.targets {
		err := target.Write(ctx, snapshot)
		m.metrics.ObserveOutput(target.Name(), err)
		if err != nil {
			m.logger.Errorf("publish to %s failed: %v", target.Name(), err)
			continue
		}
		m.logger.Debugf("published snapshot to %s", target.Name())
	}

	return nil
}

// Close releases every writer.
func (m *Manager) Close() error {
	var firstErr error

	if m.snapshot != nil {
		if err := m.snapshot.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, target := range m.targets {
		if err := target.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
