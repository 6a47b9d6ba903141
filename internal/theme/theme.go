// Package theme remembers whether the chat is shown in the dark or light
// theme. The choice is kept under the key "theme" in a Store so it survives
// restarts.
package theme

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/edgard/arabictutor/internal/logger"
)

// Key is the store key holding the theme.
const Key = "theme"

// Theme is the visual mode of the chat.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse maps a stored value to a Theme. Only "dark" selects Dark.
func Parse(v string) Theme {
	if v == string(Dark) {
		return Dark
	}
	return Light
}

// ErrNotFound is returned by a Store for an absent key.
var ErrNotFound = errors.New("key not found")

// Store is a string key/value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Applier switches the presentation to a theme.
type Applier func(Theme)

// Controller loads, applies, and toggles the theme.
type Controller struct {
	store   Store
	apply   Applier
	current Theme
	log     *slog.Logger
}

// NewController creates a Controller. apply may be nil.
func NewController(store Store, apply Applier, log *slog.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	if apply == nil {
		apply = func(Theme) {}
	}
	return &Controller{store: store, apply: apply, current: Light, log: log.With("component", "theme")}
}

// Load applies the stored theme. An absent or unreadable value means Light.
func (c *Controller) Load() Theme {
	v, err := c.store.Get(Key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.log.Warn("Failed to read theme, using light", "error", err)
	}
	c.current = Parse(v)
	c.apply(c.current)
	return c.current
}

// Current returns the applied theme.
func (c *Controller) Current() Theme { return c.current }

// Toggle flips the theme, applies it, and stores the new value. The theme
// is applied even when the store write fails.
func (c *Controller) Toggle() (Theme, error) {
	next := Dark
	if c.current == Dark {
		next = Light
	}
	c.current = next
	c.apply(next)

	if err := c.store.Set(Key, string(next)); err != nil {
		c.log.Error("Failed to store theme", "theme", next, "error", err)
		return next, fmt.Errorf("failed to store theme: %w", err)
	}
	return next, nil
}
