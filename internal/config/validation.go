package config

import (
	"github.com/go-playground/validator/v10"
)

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// HasGemini reports whether the primary answerer can be built.
func (c *Config) HasGemini() bool {
	return c.Answer.Gemini.APIKey != ""
}

// HasOpenAI reports whether the fallback answerer can be built.
func (c *Config) HasOpenAI() bool {
	return c.Answer.OpenAI.APIKey != ""
}
