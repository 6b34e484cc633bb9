package config

import (
	"fmt"
	"strings"

	"cutxml/titlecard"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTitleCards(); err != nil {
		return err
	}
	return c.validateLog()
}

func (c *Config) validateTitleCards() error {
	tc := c.TitleCards
	if _, err := titlecard.ParseColor(tc.BackgroundColor); err != nil {
		return fmt.Errorf("title_cards.background_color: %w", err)
	}
	if tc.DurationFrames <= 0 {
		return fmt.Errorf("title_cards.duration_frames must be positive, got %d", tc.DurationFrames)
	}
	if tc.TransitionFrames <= 0 {
		return fmt.Errorf("title_cards.transition_frames must be positive, got %d", tc.TransitionFrames)
	}
	switch tc.Renderer {
	case RendererRaster, RendererBrowser:
	default:
		return fmt.Errorf("title_cards.renderer: unsupported value %q (want %s or %s)", tc.Renderer, RendererRaster, RendererBrowser)
	}
	return nil
}

func (c *Config) validateLog() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unsupported value %q", c.Log.Level)
	}
	return nil
}
