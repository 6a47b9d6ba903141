package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. TUTOR_ANSWER_GEMINI_API_KEY.
const EnvPrefix = "TUTOR"

// Load reads configuration in this order:
// 1. Default values
// 2. the YAML file at path (optional; empty path searches ./config.yaml)
// 3. TUTOR_* environment variables
func Load(path string) (*Config, error) {
	startTime := time.Now()

	v := viper.New()
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Debug("configuration loaded",
		"config_file", v.ConfigFileUsed(),
		"db_path", cfg.Database.Path,
		"gemini_model", cfg.Answer.Gemini.Model,
		"duration_ms", time.Since(startTime).Milliseconds())

	return cfg, nil
}
