package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/arabictutor/internal/logger"
)

// TaskSQLMaintenance is the registry name of the database maintenance task.
const TaskSQLMaintenance = "sql_maintenance"

// TaskFunc is a scheduled task. It should respect ctx cancellation.
type TaskFunc func(ctx context.Context) error

// Maintainer runs database maintenance.
type Maintainer interface {
	RunSQLMaintenance(ctx context.Context) error
}

// TaskDeps holds what the tasks need.
type TaskDeps struct {
	Logger *slog.Logger
	Store  Maintainer
}

// RegisterTasks returns every task keyed by the name used in configuration.
func RegisterTasks(deps TaskDeps) map[string]TaskFunc {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	tasks := map[string]TaskFunc{
		TaskSQLMaintenance: newSQLMaintenanceTask(deps),
	}
	deps.Logger.Debug("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}

func newSQLMaintenanceTask(deps TaskDeps) TaskFunc {
	log := deps.Logger.With("task", TaskSQLMaintenance)

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting scheduled SQL maintenance task...")
		start := time.Now()

		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", time.Since(start))
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled SQL maintenance task completed successfully", "duration", time.Since(start))
		return nil
	}
}
