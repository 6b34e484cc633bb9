// Package config loads cutxml settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cutxml/timecode"
	"cutxml/timeline"
)

// TitleCards controls title card insertion and drawing.
type TitleCards struct {
	Enabled          bool     `toml:"enabled"`
	BeforeFirst      bool     `toml:"before_first"`
	BackgroundColor  string   `toml:"background_color"`
	Text             string   `toml:"text"`
	Directory        string   `toml:"directory"`
	DurationFrames   int      `toml:"duration_frames"`
	TransitionFrames int      `toml:"transition_frames"`
	Renderer         string   `toml:"renderer"`
	FontPaths        []string `toml:"font_paths"`
}

// Media locates source files named by relative identifiers.
type Media struct {
	Directory string `toml:"directory"`
}

// Log contains configuration for log output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for cutxml.
type Config struct {
	TitleCards TitleCards `toml:"title_cards"`
	Media      Media      `toml:"media"`
	Log        Log        `toml:"log"`
}

// Renderer names accepted in title_cards.renderer.
const (
	RendererRaster  = "raster"
	RendererBrowser = "browser"
)

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		TitleCards: TitleCards{
			Enabled:          true,
			BackgroundColor:  timeline.DefaultBackground,
			Directory:        timeline.DefaultTitleDir,
			DurationFrames:   timeline.DefaultTitleFrames,
			TransitionFrames: timeline.DefaultTransitionFrames,
			Renderer:         RendererRaster,
		},
		Log: Log{
			Level:  "info",
			Format: "auto",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cutxml/config.toml")
}

// Load reads path, or the default location when path is empty. A missing
// default file is not an error; defaults apply. The bool reports whether a
// file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	resolved := path
	var err error
	if resolved == "" {
		resolved, err = DefaultConfigPath()
	} else {
		resolved, err = expandPath(resolved)
	}
	if err != nil {
		return nil, false, err
	}

	exists, err := decodeFile(resolved, &cfg)
	if err != nil {
		return nil, false, err
	}
	if !exists && path != "" {
		return nil, false, fmt.Errorf("config file %s not found", resolved)
	}

	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

func decodeFile(path string, cfg *Config) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

func (c *Config) normalize() error {
	c.TitleCards.Renderer = strings.ToLower(strings.TrimSpace(c.TitleCards.Renderer))
	c.TitleCards.BackgroundColor = strings.TrimSpace(c.TitleCards.BackgroundColor)
	if strings.TrimSpace(c.TitleCards.Directory) == "" {
		c.TitleCards.Directory = timeline.DefaultTitleDir
	}
	var err error
	if c.TitleCards.Directory, err = expandPath(c.TitleCards.Directory); err != nil {
		return fmt.Errorf("title_cards.directory: %w", err)
	}
	if c.Media.Directory, err = expandPath(c.Media.Directory); err != nil {
		return fmt.Errorf("media.directory: %w", err)
	}
	for i, p := range c.TitleCards.FontPaths {
		if c.TitleCards.FontPaths[i], err = expandPath(p); err != nil {
			return fmt.Errorf("title_cards.font_paths[%d]: %w", i, err)
		}
	}
	return nil
}

// Options converts the settings into assembler options.
func (c *Config) Options() timeline.Options {
	return timeline.Options{
		IncludeTitleCards: c.TitleCards.Enabled,
		TitleBeforeFirst:  c.TitleCards.BeforeFirst,
		BackgroundColor:   c.TitleCards.BackgroundColor,
		TitleText:         c.TitleCards.Text,
		TitleDir:          c.TitleCards.Directory,
		MediaDir:          c.Media.Directory,
		TitleFrames:       c.TitleCards.DurationFrames,
		TransitionFrames:  c.TitleCards.TransitionFrames,
		Rate:              timecode.DefaultRate,
	}
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
