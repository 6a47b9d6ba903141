package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("server.addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, DefaultDBPath)
	}
	if cfg.Client.Timeout != 0 {
		t.Errorf("client.timeout = %v, want 0", cfg.Client.Timeout)
	}
	if cfg.Answer.NotFoundMessage != DefaultNotFoundMessage {
		t.Errorf("answer.not_found_message = %q", cfg.Answer.NotFoundMessage)
	}
	task, ok := cfg.Scheduler.Tasks["sql_maintenance"]
	if !ok || !task.Enabled || task.Schedule != DefaultSQLMaintenanceSchedule {
		t.Errorf("sql_maintenance task = %+v, present %v", task, ok)
	}
	if cfg.HasGemini() || cfg.HasOpenAI() {
		t.Error("expected no answerer keys by default")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tutor.yaml")
	content := `
log:
  level: debug
  format: text
database:
  path: /tmp/other.db
client:
  base_url: http://tutor.example:8080
  timeout: 15s
answer:
  gemini:
    model: gemini-test
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TUTOR_ANSWER_GEMINI_API_KEY", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Client.Timeout != 15*time.Second {
		t.Errorf("client.timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Answer.Gemini.Model != "gemini-test" {
		t.Errorf("gemini model = %q", cfg.Answer.Gemini.Model)
	}
	if !cfg.HasGemini() {
		t.Error("expected gemini key from environment")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "bad log level",
			content: "log:\n  level: verbose\n",
		},
		{
			name:    "telegram enabled without token",
			content: "telegram:\n  enabled: true\n",
		},
		{
			name:    "client base url not a url",
			content: "client:\n  base_url: not a url\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}

			_, err := Load(path)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Load error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Load error = %v, want ErrConfiguration", err)
	}
}
