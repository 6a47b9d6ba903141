package scheduler

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/edgard/arabictutor/internal/config"
)

type fakeMaintainer struct {
	calls chan struct{}
	err   error
}

func (f *fakeMaintainer) RunSQLMaintenance(context.Context) error {
	f.calls <- struct{}{}
	return f.err
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()
	m := &fakeMaintainer{calls: make(chan struct{}, 2)}
	tasks := RegisterTasks(TaskDeps{Store: m})

	task, ok := tasks[TaskSQLMaintenance]
	if !ok {
		t.Fatal("sql_maintenance task not registered")
	}
	if err := task(context.Background()); err != nil {
		t.Errorf("task() error = %v", err)
	}

	m.err = errors.New("locked")
	if err := task(context.Background()); err == nil {
		t.Error("task() error = nil with failing store")
	}
}

func TestStartSchedulesEnabledTasks(t *testing.T) {
	t.Parallel()
	noop := func(context.Context) error { return nil }
	cfg := config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"enabled":     {Enabled: true, Schedule: "0 0 3 * * *"},
		"disabled":    {Enabled: false, Schedule: "0 0 3 * * *"},
		"unknown":     {Enabled: true, Schedule: "0 0 3 * * *"},
		"bad_cron":    {Enabled: true, Schedule: "not a cron"},
		"no_schedule": {Enabled: true},
	}}
	registry := map[string]TaskFunc{
		"enabled":     noop,
		"disabled":    noop,
		"bad_cron":    noop,
		"no_schedule": noop,
	}

	s, err := New(nil, cfg, registry)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	if err := s.Start(); err == nil {
		t.Error("second Start() error = nil")
	}

	jobs := s.Jobs()
	sort.Strings(jobs)
	if len(jobs) != 1 || jobs[0] != "enabled" {
		t.Errorf("Jobs() = %v, want [enabled]", jobs)
	}
}

func TestRunExecutesTask(t *testing.T) {
	t.Parallel()
	m := &fakeMaintainer{calls: make(chan struct{}, 10)}
	cfg := config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		TaskSQLMaintenance: {Enabled: true, Schedule: "* * * * * *"},
	}}
	s, err := New(nil, cfg, RegisterTasks(TaskDeps{Store: m}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-m.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("maintenance task did not run")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
