package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func newTestStore(t *testing.T) (Store, *sqlx.DB) {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { CloseDB(db) })
	return NewStore(db, nil), db
}

func TestUpsertAndGetMaterial(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetMaterialContent(ctx, "beginner", "week01"); !errors.Is(err, ErrMaterialNotFound) {
		t.Fatalf("GetMaterialContent() on empty db error = %v, want ErrMaterialNotFound", err)
	}

	if err := store.UpsertMaterial(ctx, &Material{Level: "beginner", Week: "week01", Content: "alif"}); err != nil {
		t.Fatalf("UpsertMaterial() error = %v", err)
	}
	if err := store.UpsertMaterial(ctx, &Material{Level: "beginner", Week: "week01", Content: "ba"}); err != nil {
		t.Fatalf("UpsertMaterial() second error = %v", err)
	}

	got, err := store.GetMaterialContent(ctx, "beginner", "week01")
	if err != nil {
		t.Fatalf("GetMaterialContent() error = %v", err)
	}
	if got != "ba" {
		t.Errorf("GetMaterialContent() = %q, want %q", got, "ba")
	}

	n, err := store.CountMaterials(ctx)
	if err != nil {
		t.Fatalf("CountMaterials() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountMaterials() = %d, want 1", n)
	}
}

func TestUpsertMaterialValidation(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)

	tests := []struct {
		name string
		m    *Material
	}{
		{"nil", nil},
		{"no level", &Material{Week: "week01", Content: "x"}},
		{"no week", &Material{Level: "beginner", Content: "x"}},
		{"blank content", &Material{Level: "beginner", Week: "week01", Content: "  "}},
	}
	for _, tt := range tests {
		if err := store.UpsertMaterial(context.Background(), tt.m); err == nil {
			t.Errorf("%s: UpsertMaterial() error = nil, want error", tt.name)
		}
	}
}

func TestReplaceAllMaterials(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertMaterial(ctx, &Material{Level: "expert", Week: "week10", Content: "old"}); err != nil {
		t.Fatalf("UpsertMaterial() error = %v", err)
	}

	seed := []Material{
		{Level: "beginner", Week: "week01", Content: "one"},
		{Level: "beginner", Week: "week02", Content: "two"},
	}
	if err := store.ReplaceAllMaterials(ctx, seed); err != nil {
		t.Fatalf("ReplaceAllMaterials() error = %v", err)
	}

	n, _ := store.CountMaterials(ctx)
	if n != 2 {
		t.Errorf("CountMaterials() = %d, want 2", n)
	}
	if _, err := store.GetMaterialContent(ctx, "expert", "week10"); !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("old material still present, error = %v", err)
	}

	bad := []Material{{Level: "beginner", Week: "week03", Content: ""}}
	if err := store.ReplaceAllMaterials(ctx, bad); err == nil {
		t.Fatal("ReplaceAllMaterials() with invalid row error = nil")
	}
	n, _ = store.CountMaterials(ctx)
	if n != 2 {
		t.Errorf("CountMaterials() after rejected replace = %d, want 2", n)
	}
}

func TestSaveLearner(t *testing.T) {
	t.Parallel()
	store, db := newTestStore(t)

	l := &Learner{Name: "Dana", Level: "beginner", Week: "week01", Gender: "female", Language: "arabic"}
	if err := store.SaveLearner(context.Background(), l); err != nil {
		t.Fatalf("SaveLearner() error = %v", err)
	}
	if l.ID == 0 {
		t.Error("SaveLearner() did not assign an ID")
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM learners"); err != nil {
		t.Fatalf("count learners: %v", err)
	}
	if count != 1 {
		t.Errorf("learners = %d, want 1", count)
	}
}

func TestContactMessageRoundTrip(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	msg := &ContactMessage{Name: "Dana", Email: "dana@example.com", Message: "hi"}
	if err := store.SaveContactMessage(ctx, msg); err != nil {
		t.Fatalf("SaveContactMessage() error = %v", err)
	}
	if len(msg.ID) != 26 {
		t.Fatalf("ID = %q, want a 26 character ULID", msg.ID)
	}

	got, err := store.GetContactMessage(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetContactMessage() error = %v", err)
	}
	if got.Email != msg.Email || got.Message != msg.Message {
		t.Errorf("GetContactMessage() = %+v, want %+v", got, msg)
	}

	if _, err := store.GetContactMessage(ctx, "missing"); !errors.Is(err, ErrContactNotFound) {
		t.Errorf("GetContactMessage(missing) error = %v, want ErrContactNotFound", err)
	}
	if err := store.SaveContactMessage(ctx, &ContactMessage{Name: "x"}); err == nil {
		t.Error("SaveContactMessage() with missing fields error = nil")
	}
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)

	if err := store.RunSQLMaintenance(context.Background()); err != nil {
		t.Fatalf("RunSQLMaintenance() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.RunSQLMaintenance(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("RunSQLMaintenance(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"materials.db", "materials.db"},
		{"file:data/materials.db?_pragma=busy_timeout(5000)", "data/materials.db"},
		{"file:my%20db.sqlite", "my db.sqlite"},
	}
	for _, tt := range tests {
		if got := ExtractDBNameFromPath(tt.in); got != tt.want {
			t.Errorf("ExtractDBNameFromPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
