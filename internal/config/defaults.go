package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultServerAddr              = ":5000"
	DefaultServerReadHeaderTimeout = 10 * time.Second
	DefaultServerWriteTimeout      = 2 * time.Minute

	DefaultDBPath = "materials.db"

	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiTemperature = 0.2
	DefaultGeminiMaxRetries  = 2
	DefaultGeminiRetryDelay  = 2 * time.Second

	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultOpenAIMaxTokens = 150

	DefaultNotFoundMessage = "No content found for the selected week."

	DefaultClientBaseURL = "http://127.0.0.1:5000"

	DefaultSQLMaintenanceSchedule = "0 0 3 * * *" // daily at 03:00:00
)

func defaultValues() map[string]any {
	return map[string]any{
		"log.level":  DefaultLogLevel,
		"log.format": DefaultLogFormat,

		"server.addr":                DefaultServerAddr,
		"server.allow_all_origins":   true,
		"server.read_header_timeout": DefaultServerReadHeaderTimeout,
		"server.write_timeout":       DefaultServerWriteTimeout,

		"database.path": DefaultDBPath,

		"answer.gemini.api_key":     "",
		"answer.gemini.model":       DefaultGeminiModel,
		"answer.gemini.temperature": DefaultGeminiTemperature,
		"answer.gemini.max_retries": DefaultGeminiMaxRetries,
		"answer.gemini.retry_delay": DefaultGeminiRetryDelay,
		"answer.openai.api_key":     "",
		"answer.openai.base_url":    "",
		"answer.openai.model":       DefaultOpenAIModel,
		"answer.openai.max_tokens":  DefaultOpenAIMaxTokens,
		"answer.translate_default":  false,
		"answer.not_found_message":  DefaultNotFoundMessage,

		"client.base_url": DefaultClientBaseURL,
		"client.timeout":  time.Duration(0),

		"chat.theme_file": "",
		"chat.log_file":   "",

		"telegram.enabled": false,
		"telegram.token":   "",

		"scheduler.tasks.sql_maintenance.enabled":  true,
		"scheduler.tasks.sql_maintenance.schedule": DefaultSQLMaintenanceSchedule,
	}
}
