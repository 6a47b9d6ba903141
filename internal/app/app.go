// Package app wires the tutor backend together: the materials database, the
// answer engine, the HTTP API, the maintenance scheduler and, when enabled,
// the Telegram front-end.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/config"
	"github.com/edgard/arabictutor/internal/database"
	"github.com/edgard/arabictutor/internal/logger"
	"github.com/edgard/arabictutor/internal/scheduler"
	"github.com/edgard/arabictutor/internal/server"
	"github.com/edgard/arabictutor/internal/telegram"
	"github.com/edgard/arabictutor/internal/tutor"
)

// component is a long-running part of the application.
type component struct {
	name string
	run  func(ctx context.Context) error
}

// App holds the backend components.
type App struct {
	log        *slog.Logger
	db         *sqlx.DB
	store      database.Store
	components []component
}

// New opens the database and builds every configured component.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := database.NewStore(db, log)

	a := &App{log: log.With("component", "app"), db: db, store: store}
	if err := a.build(ctx, cfg, log); err != nil {
		database.CloseDB(db)
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	engine, err := NewEngine(ctx, cfg, a.store, log)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, engine, a.store, log)
	a.components = append(a.components, component{name: "http_server", run: srv.Run})

	sched, err := scheduler.New(log, cfg.Scheduler, scheduler.RegisterTasks(scheduler.TaskDeps{Logger: log, Store: a.store}))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	a.components = append(a.components, component{name: "scheduler", run: sched.Run})

	if cfg.Telegram.Enabled {
		tg, err := telegram.NewBot(cfg.Telegram.Token, engine, StoreContactSender{Store: a.store}, log)
		if err != nil {
			return fmt.Errorf("failed to create telegram bot: %w", err)
		}
		a.components = append(a.components, component{name: "telegram", run: tg.Run})
	}
	return nil
}

// NewEngine builds the answer engine from the configured answerers. Gemini
// is the primary answerer and OpenAI the fallback; either may be absent but
// not both.
func NewEngine(ctx context.Context, cfg *config.Config, materials tutor.MaterialSource, log *slog.Logger) (*tutor.Engine, error) {
	opts := tutor.Options{
		Materials:       materials,
		NotFoundMessage: cfg.Answer.NotFoundMessage,
	}

	if cfg.HasGemini() {
		gemini, err := tutor.NewGeminiAnswerer(ctx, cfg.Answer.Gemini, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini answerer: %w", err)
		}
		opts.Primary = gemini
	}
	if cfg.HasOpenAI() {
		openai, err := tutor.NewOpenAIAnswerer(cfg.Answer.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai answerer: %w", err)
		}
		opts.Fallback = openai
	}
	if cfg.Answer.TranslateDefault {
		opts.Translator = tutor.NewGoogleTranslator()
	}

	engine, err := tutor.NewEngine(opts, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create answer engine: %w", err)
	}
	return engine, nil
}

// Run starts all components and blocks until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	defer database.CloseDB(a.db)
	return runComponents(ctx, a.log, a.components)
}

func runComponents(ctx context.Context, log *slog.Logger, components []component) error {
	log.Info("Starting tutor backend...", "components", len(components))

	g, gCtx := errgroup.WithContext(ctx)
	for _, c := range components {
		g.Go(func() error {
			log.Info("Starting component", "name", c.name)
			if err := c.run(gCtx); err != nil {
				log.Error("Component failed", "name", c.name, "error", err)
				return fmt.Errorf("%s: %w", c.name, err)
			}
			log.Info("Component stopped", "name", c.name)
			return nil
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Tutor backend stopped due to error", "error", err)
		return err
	}

	log.Info("Tutor backend stopped gracefully.")
	return nil
}

// StoreContactSender saves contact submissions straight into the database,
// for front-ends that run inside the backend process.
type StoreContactSender struct {
	Store interface {
		SaveContactMessage(ctx context.Context, msg *database.ContactMessage) error
	}
}

// SendContact stores sub.
func (s StoreContactSender) SendContact(ctx context.Context, sub chat.ContactSubmission) error {
	return s.Store.SaveContactMessage(ctx, &database.ContactMessage{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	})
}

var _ chat.ContactSender = StoreContactSender{}
