package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), DefaultFileName))
}

func TestLoadMissingFileSeedsDefaults(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	if diff := cmp.Diff(Default(), s.Get()); diff != "" {
		t.Errorf("Get() after first Load differs from defaults (-want +got):\n%s", diff)
	}
	// First run persists the defaults so the editor has a document.
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("default document not seeded: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	cfg := s.Get()
	cfg.IconSize = 48
	cfg.OverlayWidth = 640
	cfg.Opacity = 0.5
	cfg.Language = "vi"
	cfg.Labels = DefaultLabels("vi")
	cfg.MoveNotation = NotationUCI
	cfg.AllowedCountries = []string{"VN", "US"}
	cfg.BlockedCountries = []string{"CN"}
	cfg.LockPosition = true
	cfg.AutoHideDelayMs = 0
	require.NoError(t, s.Save(cfg))

	// A fresh store reading the same document sees the same config.
	s2 := NewStore(s.Path())
	s2.Load()
	if diff := cmp.Diff(cfg, s2.Get()); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveRejectsInvalidConfigWithoutWriting(t *testing.T) {
	s := newTestStore(t)
	s.Load()
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	cfg := s.Get()
	cfg.FontSize = 99
	err = s.Save(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "font_size")

	// Neither the document nor the in-memory config changed.
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, Default().FontSize, s.Get().FontSize)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{{{ not yaml"), 0o644))
	s.Load()
	assert.Equal(t, Default(), s.Get())
}

func TestLoadOutOfBoundsDocumentFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("icon_size: 9999\n"), 0o644))
	s.Load()
	assert.Equal(t, Default().IconSize, s.Get().IconSize)
}

func TestLoadPartialDocumentKeepsDefaultsForMissingFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("language: de\nicon_size: 48\n"), 0o644))
	s.Load()

	cfg := s.Get()
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 48, cfg.IconSize)
	assert.Equal(t, Default().OverlayWidth, cfg.OverlayWidth)
	// Absent label table is generated for the document's language.
	assert.Equal(t, "BESTER ZUG", cfg.Labels["best"])
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	s.Load()
	require.NoError(t, s.Save(s.Get()))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".overlay-config-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestResetToDefaultsIsNotPersistedUntilSave(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	cfg := s.Get()
	cfg.IconSize = 48
	require.NoError(t, s.Save(cfg))

	s.ResetToDefaults()
	assert.Equal(t, 32, s.Get().IconSize)

	// The document still holds the saved value until the reset is saved.
	s2 := NewStore(s.Path())
	s2.Load()
	assert.Equal(t, 48, s2.Get().IconSize)
}

func TestReloadDiscardsInMemoryEdits(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	cfg := s.Get()
	cfg.IconSize = 48
	require.NoError(t, s.Save(cfg))

	// Unsaved edit lives only in memory.
	s.ResetToDefaults()
	assert.Equal(t, 32, s.Get().IconSize)

	reloaded := s.Reload()
	assert.Equal(t, 48, reloaded.IconSize)
	assert.Equal(t, 48, s.Get().IconSize)
}

func TestGetReturnsIndependentSnapshot(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	cfg := s.Get()
	cfg.Labels["blunder"] = "OOPS"
	cfg.AllowedCountries = append(cfg.AllowedCountries, "US")

	assert.Equal(t, "BLUNDER!!", s.Get().Labels["blunder"])
	assert.Empty(t, s.Get().AllowedCountries)
}

func TestStoreIsCountryAllowed(t *testing.T) {
	s := newTestStore(t)
	s.Load()
	cfg := s.Get()
	cfg.BlockedCountries = []string{"CN"}
	require.NoError(t, s.Save(cfg))

	assert.False(t, s.IsCountryAllowed("CN"))
	assert.True(t, s.IsCountryAllowed("VN"))
}
