// The chess-overlay resident runs the UI loop, the dispatcher, and the
// config watcher. Analysis collaborators in the same process hand move
// annotations to dispatcher.Dispatch from their own goroutines; the
// overlay renders them here. With -demo it feeds itself a scripted cycle
// of all eight move labels, useful for checking a setup end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chess-move-overlay/annotation"
	"chess-move-overlay/config"
	"chess-move-overlay/dispatcher"
	"chess-move-overlay/logutil"
	"chess-move-overlay/overlay"
	"chess-move-overlay/uiloop"
)

func main() {
	configPath := flag.String("config", "", "Path to the overlay config document (default: OVERLAY_CONFIG_PATH or ./"+config.DefaultFileName+")")
	demo := flag.Bool("demo", false, "Dispatch a scripted cycle of all move labels from a worker goroutine")
	flag.Parse()

	logutil.Setup(config.FileLoggingEnabled())

	if err := run(*configPath, *demo); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, demo bool) error {
	store := config.NewStore(config.ResolvePath(configPath))
	store.Load()

	loop := uiloop.New()
	renderer := overlay.NewHeadlessRenderer(0, 0)
	presenter := overlay.NewPresenter(store, renderer, loop)

	if err := dispatcher.Init(loop, presenter.Display); err != nil {
		return err
	}
	defer dispatcher.Teardown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Pick up saves from a concurrently running configuration editor.
	watcher, err := config.NewWatcher(store, func(cfg config.Config) {
		loop.Post(func() {
			log.Printf("Main: config changed externally (language=%s, theme=%s)", cfg.Language, cfg.Theme)
		})
	})
	if err != nil {
		log.Printf("Main: config watcher unavailable: %v", err)
	} else {
		go watcher.Run(ctx)
	}

	if demo {
		go runDemo(ctx, store)
	}

	log.Printf("Main: overlay resident running (config=%s)", store.Path())
	return loop.Run(ctx)
}

// runDemo plays the original self-test script: every label once, a few
// seconds apart, dispatched from this worker goroutine.
func runDemo(ctx context.Context, store *config.Store) {
	type scripted struct {
		label   string
		best    string
		opp     string
		eval    int
		country string
	}
	moves := []scripted{
		{"brilliant", "Nxe5", "Qd4", 310, "US"},
		{"best", "e4", "Nc6", 35, "US"},
		{"excellent", "Bc4", "Bb4", 60, "VN"},
		{"good", "O-O", "d5", 20, "GB"},
		{"inaccuracy", "Qh5", "Nf6", -45, "DE"},
		{"mistake", "f3", "Qh4+", -230, "FR"},
		{"blunder", "Ke2", "Qxf2#", -750, "RU"},
		{"forced", "Kg1", "", -120, "US"},
	}
	ticker := time.NewTicker(6 * time.Second)
	defer ticker.Stop()
	for i := 0; ; i++ {
		m := moves[i%len(moves)]
		// The position receiver applies the country filter before the
		// dispatch, so the overlay itself stays country-agnostic.
		if !store.IsCountryAllowed(m.country) {
			log.Printf("Demo: %s filtered by country %s", m.label, m.country)
		} else {
			opts := []annotation.Option{annotation.WithEvaluation(m.eval), annotation.WithDepth(18)}
			if m.opp != "" {
				opts = append(opts, annotation.WithOpponentBest(m.opp))
			}
			a, err := annotation.New(m.label, m.best, opts...)
			if err != nil {
				log.Printf("Demo: bad scripted move: %v", err)
				continue
			}
			dispatcher.Dispatch(a)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
