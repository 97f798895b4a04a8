// Package config holds the persisted overlay settings document and the
// Store that loads, validates, and saves it. The document is a flat YAML
// file (one nesting level for the label table) shared with the external
// configuration editor; writers replace it atomically so a concurrent
// reader never observes a truncated file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Theme selects the overlay background styling.
const (
	ThemeDark        = "dark"
	ThemeLight       = "light"
	ThemeTransparent = "transparent"
)

// Move notation styles.
const (
	NotationSAN = "san" // e4, Nf3
	NotationUCI = "uci" // e2e4, g1f3
)

// DefaultFileName is the config document name used when no path override
// is supplied.
const DefaultFileName = "overlay_config.yaml"

// Config is the overlay settings document. Field order matters: Validate
// reports the first violated bound in declaration order.
type Config struct {
	// Appearance
	IconSize       int     `yaml:"icon_size"`       // 16-64 px
	FontSize       int     `yaml:"font_size"`       // 10-32 px
	OverlayWidth   int     `yaml:"overlay_width"`   // 300-800 px
	OverlayHeight  int     `yaml:"overlay_height"`  // 200-600 px
	Opacity        float64 `yaml:"opacity"`         // 0.0-1.0
	AnimationSpeed float64 `yaml:"animation_speed"` // 0.5-2.0

	// Positioning
	PositionX    int  `yaml:"position_x"`
	PositionY    int  `yaml:"position_y"`
	LockPosition bool `yaml:"lock_position"`
	AlwaysOnTop  bool `yaml:"always_on_top"`

	// Display options
	ShowBestMove     bool `yaml:"show_best_move"`
	ShowOpponentBest bool `yaml:"show_opponent_best"`
	ShowEvaluation   bool `yaml:"show_evaluation"`
	AutoHideDelayMs  int  `yaml:"auto_hide_delay_ms"` // 0 = never hide

	// Language & localization
	Language     string            `yaml:"language"`      // en, vi, es, fr, de, ru, zh
	MoveNotation string            `yaml:"move_notation"` // san or uci
	Labels       map[string]string `yaml:"labels"`        // logical key -> display string

	// Country filter
	AllowedCountries []string `yaml:"allowed_countries"` // empty = allow all
	BlockedCountries []string `yaml:"blocked_countries"` // block wins over allow
	ShowCountryFlags bool     `yaml:"show_country_flags"`

	// Advanced
	Theme          string `yaml:"theme"`
	BlurBackground bool   `yaml:"blur_background"`
	EnableSound    bool   `yaml:"enable_sound"`
}

// Default returns the documented default configuration, including the
// label table for the default language.
func Default() Config {
	cfg := Config{
		IconSize:         32,
		FontSize:         16,
		OverlayWidth:     400,
		OverlayHeight:    250,
		Opacity:          0.95,
		AnimationSpeed:   1.0,
		PositionX:        100,
		PositionY:        100,
		LockPosition:     false,
		AlwaysOnTop:      true,
		ShowBestMove:     true,
		ShowOpponentBest: true,
		ShowEvaluation:   true,
		AutoHideDelayMs:  5000,
		Language:         "en",
		MoveNotation:     NotationSAN,
		AllowedCountries: []string{},
		BlockedCountries: []string{},
		ShowCountryFlags: true,
		Theme:            ThemeDark,
		BlurBackground:   true,
		EnableSound:      false,
	}
	cfg.Labels = DefaultLabels(cfg.Language)
	return cfg
}

// Validate checks every documented bound and returns the first violation,
// in field declaration order, as a human-readable error naming the field.
// It never mutates or clamps.
func (c *Config) Validate() error {
	if c.IconSize < 16 || c.IconSize > 64 {
		return fmt.Errorf("icon_size must be between 16 and 64, got %d", c.IconSize)
	}
	if c.FontSize < 10 || c.FontSize > 32 {
		return fmt.Errorf("font_size must be between 10 and 32, got %d", c.FontSize)
	}
	if c.OverlayWidth < 300 || c.OverlayWidth > 800 {
		return fmt.Errorf("overlay_width must be between 300 and 800, got %d", c.OverlayWidth)
	}
	if c.OverlayHeight < 200 || c.OverlayHeight > 600 {
		return fmt.Errorf("overlay_height must be between 200 and 600, got %d", c.OverlayHeight)
	}
	if c.Opacity < 0.0 || c.Opacity > 1.0 {
		return fmt.Errorf("opacity must be between 0.0 and 1.0, got %g", c.Opacity)
	}
	if c.AnimationSpeed < 0.5 || c.AnimationSpeed > 2.0 {
		return fmt.Errorf("animation_speed must be between 0.5 and 2.0, got %g", c.AnimationSpeed)
	}
	if c.AutoHideDelayMs < 0 {
		return fmt.Errorf("auto_hide_delay_ms must be >= 0, got %d", c.AutoHideDelayMs)
	}
	if !knownLanguage(c.Language) {
		return fmt.Errorf("language must be one of %s, got %q", strings.Join(LanguageCodes, ", "), c.Language)
	}
	if c.MoveNotation != NotationSAN && c.MoveNotation != NotationUCI {
		return fmt.Errorf("move_notation must be %q or %q, got %q", NotationSAN, NotationUCI, c.MoveNotation)
	}
	for _, key := range sortedKeys(c.Labels) {
		if !knownLabelKey(key) {
			return fmt.Errorf("labels contains unknown key %q", key)
		}
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight && c.Theme != ThemeTransparent {
		return fmt.Errorf("theme must be %q, %q, or %q, got %q", ThemeDark, ThemeLight, ThemeTransparent, c.Theme)
	}
	return nil
}

// IsCountryAllowed reports whether an annotation originating from the
// given ISO country code may be shown. Block list wins; a non-empty allow
// list acts as a whitelist; with neither configured, everything passes.
func (c *Config) IsCountryAllowed(code string) bool {
	for _, blocked := range c.BlockedCountries {
		if blocked == code {
			return false
		}
	}
	if len(c.AllowedCountries) == 0 {
		return true
	}
	for _, allowed := range c.AllowedCountries {
		if allowed == code {
			return true
		}
	}
	return false
}

// LabelFor returns the display string for a logical label key, falling
// back to the English table and finally to the upper-cased key itself.
func (c *Config) LabelFor(key string) string {
	if s, ok := c.Labels[key]; ok {
		return s
	}
	if s, ok := labelsByLanguage["en"][key]; ok {
		return s
	}
	return strings.ToUpper(key)
}

// clone deep-copies the config so callers can edit a snapshot without
// racing the store.
func (c *Config) clone() Config {
	out := *c
	out.Labels = make(map[string]string, len(c.Labels))
	for k, v := range c.Labels {
		out.Labels[k] = v
	}
	// make+copy rather than append: an empty list must stay an empty
	// list, not become nil, or saved documents and equality checks drift.
	out.AllowedCountries = make([]string, len(c.AllowedCountries))
	copy(out.AllowedCountries, c.AllowedCountries)
	out.BlockedCountries = make([]string, len(c.BlockedCountries))
	copy(out.BlockedCountries, c.BlockedCountries)
	return out
}

// ResolvePath decides where the config document lives. Order: explicit
// argument, then the OVERLAY_CONFIG_PATH env override (a .env file in the
// working directory or beside the executable is honored), then
// DefaultFileName in the working directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	loadDotEnv()
	if p := os.Getenv("OVERLAY_CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultFileName
}

// FileLoggingEnabled reads the ENABLE_FILE_LOGGING env override.
func FileLoggingEnabled() bool {
	loadDotEnv()
	return strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true"
}

func loadDotEnv() {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}
}
