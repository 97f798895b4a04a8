package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure returned by Save.
var ErrInvalidConfig = errors.New("invalid configuration")

// Store owns the in-memory config and its persisted document. All methods
// are safe for concurrent use; the overlay, the dispatcher path, and the
// configuration editor share one Store.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  Config

	reload singleflight.Group
}

// NewStore creates a store bound to the given document path. Call Load
// before first use; the zero store holds defaults.
func NewStore(path string) *Store {
	return &Store{path: path, cfg: Default()}
}

// Path returns the document path the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads the persisted document. A missing file is seeded with
// defaults; a malformed or out-of-bounds document falls back to defaults.
// Both conditions are logged and non-fatal: Load never returns an error
// for a recoverable document problem.
func (s *Store) Load() {
	cfg, err := s.read()
	if err != nil {
		log.Printf("Config: %v; using defaults", err)
		cfg = Default()
		if errors.Is(err, os.ErrNotExist) {
			// First run: persist the defaults so the editor has a
			// document to open.
			if saveErr := s.writeFile(cfg); saveErr != nil {
				log.Printf("Config: failed to seed default document: %v", saveErr)
			}
		}
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	log.Printf("Config: loaded from %s (language=%s, theme=%s)", s.path, cfg.Language, cfg.Theme)
}

func (s *Store) read() (Config, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	// Start from defaults so fields absent from the document keep their
	// documented values. The label table is cleared first: when the
	// document omits it, it must be regenerated for the document's
	// language, not inherited from the default language.
	cfg := Default()
	cfg.Labels = nil
	if err := yamlv3.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if len(cfg.Labels) == 0 {
		cfg.Labels = DefaultLabels(cfg.Language)
	}
	if cfg.AllowedCountries == nil {
		cfg.AllowedCountries = []string{}
	}
	if cfg.BlockedCountries == nil {
		cfg.BlockedCountries = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", s.path, err)
	}
	return cfg, nil
}

// Get returns a snapshot of the current config. The snapshot is a deep
// copy; edit it freely and hand it back to Save.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.clone()
}

// Save validates cfg, persists it atomically, and makes it the current
// in-memory config. On validation failure nothing is written and nothing
// changes in memory.
func (s *Store) Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeFile(cfg); err != nil {
		return err
	}
	s.cfg = cfg.clone()
	return nil
}

// writeFile replaces the document with write-temp/fsync/rename so a
// crashed writer never leaves a truncated file behind. Caller holds the
// lock (or is seeding before the store is shared).
func (s *Store) writeFile(cfg Config) error {
	content, err := yamlv3.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".overlay-config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Reload re-reads the document, discarding any in-memory edits that were
// never saved. Concurrent Reload calls (a watcher event racing a manual
// reload) are collapsed into one disk read.
func (s *Store) Reload() Config {
	v, _, _ := s.reload.Do("reload", func() (interface{}, error) {
		s.Load()
		return s.Get(), nil
	})
	return v.(Config)
}

// ResetToDefaults replaces the in-memory config with the documented
// defaults. Nothing is persisted until Save is called.
func (s *Store) ResetToDefaults() Config {
	s.mu.Lock()
	s.cfg = Default()
	out := s.cfg.clone()
	s.mu.Unlock()
	log.Printf("Config: reset to defaults (not yet saved)")
	return out
}

// IsCountryAllowed applies the country filter against the current config.
// Exposed for the position-receiver collaborator to consult before it
// triggers a dispatch.
func (s *Store) IsCountryAllowed(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.IsCountryAllowed(code)
}
