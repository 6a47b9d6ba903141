// Package scheduler runs the tutor's periodic maintenance tasks on cron
// schedules taken from configuration.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/arabictutor/internal/config"
	"github.com/edgard/arabictutor/internal/logger"
)

// Scheduler manages scheduled tasks using the gocron library.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       config.SchedulerConfig
	taskMap   map[string]TaskFunc
	mu        sync.Mutex
	running   bool
}

// New creates a scheduler for the tasks in taskMap that cfg enables.
func New(log *slog.Logger, cfg config.SchedulerConfig, taskMap map[string]TaskFunc) (*Scheduler, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "scheduler")

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
	}, nil
}

// Start schedules every enabled task and starts the scheduler. Tasks that
// are unknown, have no schedule, or fail to parse are skipped with a log line.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	scheduled := 0
	for name, taskCfg := range s.cfg.Tasks {
		if !taskCfg.Enabled {
			s.logger.Info("Skipping disabled task", "task_name", name)
			continue
		}
		task, ok := s.taskMap[name]
		if !ok {
			s.logger.Warn("Scheduled task configured but not found in registry, skipping", "task_name", name)
			continue
		}
		if taskCfg.Schedule == "" {
			s.logger.Warn("Scheduled task enabled but has empty schedule, skipping", "task_name", name)
			continue
		}

		_, err := s.scheduler.NewJob(
			gocron.CronJob(taskCfg.Schedule, true),
			gocron.NewTask(s.runTask, name, task),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", name, "schedule", taskCfg.Schedule, "error", err)
			continue
		}

		s.logger.Info("Scheduled task", "task_name", name, "schedule", taskCfg.Schedule)
		scheduled++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "tasks_scheduled", scheduled)
	return nil
}

// runTask receives the job context from gocron, which is cancelled on shutdown.
func (s *Scheduler) runTask(ctx context.Context, name string, task TaskFunc) {
	s.logger.InfoContext(ctx, "Running scheduled task", "task_name", name)
	start := time.Now()
	if err := task(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Scheduled task failed", "task_name", name, "error", err)
	}
	s.logger.InfoContext(ctx, "Finished scheduled task", "task_name", name, "duration", time.Since(start))
}

// Jobs returns the names of the scheduled jobs.
func (s *Scheduler) Jobs() []string {
	var names []string
	for _, j := range s.scheduler.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

// Stop shuts the scheduler down, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}
	s.running = false
	return err
}

// Run starts the scheduler and stops it when ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}
