package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		stored string
		set    bool
		want   Theme
	}{
		{"absent", "", false, Light},
		{"dark", "dark", true, Dark},
		{"light", "light", true, Light},
		{"garbage", "DARK", true, Light},
	}
	for _, tt := range tests {
		store := NewMemoryStore()
		if tt.set {
			_ = store.Set(Key, tt.stored)
		}
		var applied []Theme
		c := NewController(store, func(th Theme) { applied = append(applied, th) }, nil)

		if got := c.Load(); got != tt.want {
			t.Errorf("%s: Load() = %q, want %q", tt.name, got, tt.want)
		}
		if len(applied) != 1 || applied[0] != tt.want {
			t.Errorf("%s: applied = %v", tt.name, applied)
		}
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	var applied Theme
	c := NewController(store, func(th Theme) { applied = th }, nil)
	c.Load()

	if got, err := c.Toggle(); err != nil || got != Dark {
		t.Fatalf("Toggle() = %q, %v", got, err)
	}
	if v, _ := store.Get(Key); v != "dark" || applied != Dark {
		t.Errorf("after first toggle stored %q applied %q", v, applied)
	}

	if got, _ := c.Toggle(); got != Light {
		t.Fatalf("second Toggle() = %q", got)
	}
	if v, _ := store.Get(Key); v != "light" || applied != Light {
		t.Errorf("after second toggle stored %q applied %q", v, applied)
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, error) { return "", errors.New("io") }
func (failingStore) Set(string, string) error   { return errors.New("io") }

func TestToggleStoreFailureStillApplies(t *testing.T) {
	t.Parallel()
	var applied Theme
	c := NewController(failingStore{}, func(th Theme) { applied = th }, nil)
	if got := c.Load(); got != Light {
		t.Fatalf("Load() = %q", got)
	}
	if _, err := c.Toggle(); err == nil {
		t.Error("Toggle() error = nil with failing store")
	}
	if applied != Dark || c.Current() != Dark {
		t.Errorf("applied = %q current = %q, want dark", applied, c.Current())
	}
}

func TestFileStoreSurvivesReload(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	c := NewController(NewFileStore(path), nil, nil)
	c.Load()
	if _, err := c.Toggle(); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	reloaded := NewController(NewFileStore(path), nil, nil)
	if got := reloaded.Load(); got != Dark {
		t.Errorf("reloaded theme = %q, want dark", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "theme: dark\n" {
		t.Errorf("file = %q", data)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Get(Key); err == nil {
		t.Error("Get() on corrupt file error = nil")
	}
	if got := NewController(NewFileStore(path), nil, nil).Load(); got != Light {
		t.Errorf("Load() on corrupt file = %q, want light", got)
	}
}
