// Package config provides configuration loading, validation, and management
// for the tutor application. It reads config.yaml and TUTOR_* environment
// variables over built-in defaults and validates the result.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config holds all application configuration sections.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Answer    AnswerConfig    `mapstructure:"answer"`
	Client    ClientConfig    `mapstructure:"client"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ServerConfig configures the HTTP API that answers /ask.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"                validate:"required"`
	AllowAllOrigins   bool          `mapstructure:"allow_all_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"min=1s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"       validate:"min=1s,max=10m"`
}

// DatabaseConfig points at the SQLite materials database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AnswerConfig configures the answer engine behind /ask.
type AnswerConfig struct {
	Gemini           GeminiConfig `mapstructure:"gemini"`
	OpenAI           OpenAIConfig `mapstructure:"openai"`
	TranslateDefault bool         `mapstructure:"translate_default"`
	NotFoundMessage  string       `mapstructure:"not_found_message" validate:"required"`
}

// GeminiConfig configures the primary answerer.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" validate:"min=0,max=1m"`
}

// OpenAIConfig configures the fallback answerer.
type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"   validate:"omitempty,url"`
	Model     string `mapstructure:"model"      validate:"required"`
	MaxTokens int    `mapstructure:"max_tokens" validate:"min=1,max=4096"`
}

// ClientConfig configures chat front-ends that reach the backend over HTTP.
// A zero Timeout means requests wait for the backend indefinitely.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=0"`
}

// ChatConfig configures the terminal chat client.
type ChatConfig struct {
	ThemeFile string `mapstructure:"theme_file"`
	LogFile   string `mapstructure:"log_file"`
}

// TelegramConfig configures the Telegram front-end.
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token" validate:"required_if=Enabled true"`
}

// SchedulerConfig lists the maintenance tasks to run.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
