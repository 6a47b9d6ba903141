package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
)

// ErrMaterialNotFound is returned when no material exists for a level and week.
var ErrMaterialNotFound = errors.New("material not found")

// ErrContactNotFound is returned when a contact message id is unknown.
var ErrContactNotFound = errors.New("contact message not found")

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetMaterialContent returns the content stored for level and week.
	GetMaterialContent(ctx context.Context, level, week string) (string, error)

	// UpsertMaterial inserts a material or replaces the content of an existing (level, week).
	UpsertMaterial(ctx context.Context, material *Material) error

	// ReplaceAllMaterials clears the materials table and inserts the given rows in one transaction.
	ReplaceAllMaterials(ctx context.Context, materials []Material) error

	// CountMaterials returns the number of stored materials.
	CountMaterials(ctx context.Context) (int, error)

	// SaveLearner records the preferences reported by a chat client.
	SaveLearner(ctx context.Context, learner *Learner) error

	// SaveContactMessage stores a contact form submission and assigns its ID.
	SaveContactMessage(ctx context.Context, msg *ContactMessage) error

	// GetContactMessage retrieves a stored contact form submission.
	GetContactMessage(ctx context.Context, id string) (*ContactMessage, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetMaterialContent(ctx context.Context, level, week string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var content string
	query := `SELECT content FROM materials WHERE level = ? AND week = ?;`
	err := s.db.GetContext(ctx, &content, query, level, week)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: level %q week %q", ErrMaterialNotFound, level, week)
		}
		s.logger.ErrorContext(ctx, "Error fetching material", "level", level, "week", week, "error", err)
		return "", fmt.Errorf("failed to get material (level %s, week %s): %w", level, week, err)
	}
	return content, nil
}

func (s *sqlxStore) UpsertMaterial(ctx context.Context, material *Material) error {
	if material == nil {
		return fmt.Errorf("cannot save nil material")
	}
	if err := validateMaterial(material); err != nil {
		return err
	}

	now := s.now()
	material.CreatedAt = now
	material.UpdatedAt = now

	query := `
        INSERT INTO materials (level, week, content, created_at, updated_at)
        VALUES (:level, :week, :content, :created_at, :updated_at)
        ON CONFLICT(level, week) DO UPDATE SET
            content = excluded.content,
            updated_at = excluded.updated_at;
    `
	if _, err := s.db.NamedExecContext(ctx, query, material); err != nil {
		s.logger.ErrorContext(ctx, "Error saving material", "level", material.Level, "week", material.Week, "error", err)
		return fmt.Errorf("failed to save material (level %s, week %s): %w", material.Level, material.Week, err)
	}

	s.logger.DebugContext(ctx, "Material saved", "level", material.Level, "week", material.Week, "bytes", len(material.Content))
	return nil
}

func (s *sqlxStore) ReplaceAllMaterials(ctx context.Context, materials []Material) error {
	for i := range materials {
		if err := validateMaterial(&materials[i]); err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for replacing materials", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM materials;"); err != nil {
		return fmt.Errorf("failed to delete materials: %w", err)
	}

	now := s.now()
	query := `
        INSERT INTO materials (level, week, content, created_at, updated_at)
        VALUES (:level, :week, :content, :created_at, :updated_at)
        ON CONFLICT(level, week) DO UPDATE SET
            content = excluded.content,
            updated_at = excluded.updated_at;
    `
	for i := range materials {
		materials[i].CreatedAt = now
		materials[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, &materials[i]); err != nil {
			return fmt.Errorf("failed to insert material (level %s, week %s): %w", materials[i].Level, materials[i].Week, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit materials transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.InfoContext(ctx, "Materials replaced", "count", len(materials))
	return nil
}

func (s *sqlxStore) CountMaterials(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM materials;`); err != nil {
		return 0, fmt.Errorf("failed to count materials: %w", err)
	}
	return n, nil
}

func (s *sqlxStore) SaveLearner(ctx context.Context, learner *Learner) error {
	if learner == nil {
		return fmt.Errorf("cannot save nil learner")
	}
	learner.CreatedAt = s.now()

	query := `
        INSERT INTO learners (name, level, week, gender, language, created_at)
        VALUES (:name, :level, :week, :gender, :language, :created_at);
    `
	result, err := s.db.NamedExecContext(ctx, query, learner)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving learner", "error", err)
		return fmt.Errorf("failed to save learner: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		learner.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving learner", "error", err)
	}
	return nil
}

func (s *sqlxStore) SaveContactMessage(ctx context.Context, msg *ContactMessage) error {
	if msg == nil {
		return fmt.Errorf("cannot save nil contact message")
	}
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("contact message must have name, email and message")
	}

	msg.CreatedAt = s.now()
	msg.ID = ulid.MustNew(ulid.Timestamp(msg.CreatedAt), ulid.DefaultEntropy()).String()

	query := `
        INSERT INTO contact_messages (id, name, email, message, created_at)
        VALUES (:id, :name, :email, :message, :created_at);
    `
	if _, err := s.db.NamedExecContext(ctx, query, msg); err != nil {
		s.logger.ErrorContext(ctx, "Error saving contact message", "error", err)
		return fmt.Errorf("failed to save contact message: %w", err)
	}

	s.logger.DebugContext(ctx, "Contact message saved", "id", msg.ID)
	return nil
}

func (s *sqlxStore) GetContactMessage(ctx context.Context, id string) (*ContactMessage, error) {
	var msg ContactMessage
	query := `SELECT id, name, email, message, created_at FROM contact_messages WHERE id = ?;`
	if err := s.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
		}
		return nil, fmt.Errorf("failed to get contact message %s: %w", id, err)
	}
	return &msg, nil
}

// RunSQLMaintenance executes VACUUM and PRAGMA optimize on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		s.logger.WarnContext(ctx, "Failed to set busy timeout", "error", err)
	}

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		s.logger.WarnContext(ctx, "PRAGMA optimize failed", "error", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}

func validateMaterial(m *Material) error {
	switch {
	case strings.TrimSpace(m.Level) == "":
		return fmt.Errorf("material must have a level")
	case strings.TrimSpace(m.Week) == "":
		return fmt.Errorf("material must have a week")
	case strings.TrimSpace(m.Content) == "":
		return fmt.Errorf("material must have non-empty content")
	}
	return nil
}
