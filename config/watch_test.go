package config

import (
	"context"
	"testing"
	"time"
)

func TestWatcherPicksUpExternalSave(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	changed := make(chan Config, 1)
	w, err := NewWatcher(s, func(cfg Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give the watcher a beat to start consuming events.
	time.Sleep(100 * time.Millisecond)

	// Simulate the external editor saving through its own store handle.
	editor := NewStore(s.Path())
	editor.Load()
	cfg := editor.Get()
	cfg.IconSize = 48
	if err := editor.Save(cfg); err != nil {
		t.Fatalf("editor save failed: %v", err)
	}

	select {
	case got := <-changed:
		if got.IconSize != 48 {
			t.Errorf("reloaded IconSize = %d, want 48", got.IconSize)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never reported the external change")
	}

	if s.Get().IconSize != 48 {
		t.Errorf("store IconSize = %d after reload, want 48", s.Get().IconSize)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	changed := make(chan Config, 1)
	w, err := NewWatcher(s, func(cfg Config) { changed <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	time.Sleep(100 * time.Millisecond)

	sibling := NewStore(s.Path() + ".other")
	sibling.Load()

	select {
	case <-changed:
		t.Fatal("watcher fired for an unrelated file")
	case <-time.After(600 * time.Millisecond):
	}
}
