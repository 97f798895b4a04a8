// overlay-stress hammers the dispatch path with concurrent producers and
// reports how many annotations were presented versus coalesced away by
// the latest-wins slot.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"chess-move-overlay/annotation"
	"chess-move-overlay/config"
	"chess-move-overlay/dispatcher"
	"chess-move-overlay/overlay"
	"chess-move-overlay/uiloop"
)

type stressOptions struct {
	workers  int
	n        int
	interval time.Duration
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts := &stressOptions{}
	cmd := newRootCmd(opts)
	return cmd.Execute()
}

func newRootCmd(opts *stressOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "overlay-stress",
		Short:         "Stress test annotation dispatch coalescing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(*opts)
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 8, "number of producer goroutines")
	cmd.Flags().IntVar(&opts.n, "n", 1000, "dispatches per producer")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "delay between dispatches per producer")

	return cmd
}

func runWithOptions(opts stressOptions) error {
	dir, err := os.MkdirTemp("", "overlay-stress")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	store := config.NewStore(filepath.Join(dir, config.DefaultFileName))
	store.Load()
	// Never auto-hide during the run; we only count presentations.
	cfg := store.Get()
	cfg.AutoHideDelayMs = 0
	if err := store.Save(cfg); err != nil {
		return err
	}

	loop := uiloop.New()
	renderer := overlay.NewHeadlessRenderer(0, 0)
	presenter := overlay.NewPresenter(store, renderer, loop)

	var presented int64
	if err := dispatcher.Init(loop, func(a annotation.MoveAnnotation) {
		presenter.Display(a)
		atomic.AddInt64(&presented, 1)
	}); err != nil {
		return err
	}
	defer dispatcher.Teardown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	labels := annotation.Labels
	var accepted int64
	var dropped int64
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < opts.workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < opts.n; i++ {
				label := labels[(seed+i)%len(labels)]
				a, err := annotation.New(string(label), "e4", annotation.WithEvaluation(i))
				if err != nil {
					continue
				}
				if dispatcher.Dispatch(a) {
					atomic.AddInt64(&accepted, 1)
				} else {
					atomic.AddInt64(&dropped, 1)
				}
				if opts.interval > 0 {
					time.Sleep(opts.interval)
				}
			}
		}(w)
	}
	wg.Wait()
	// Let the last drain land.
	time.Sleep(100 * time.Millisecond)
	elapsed := time.Since(start)

	total := int64(opts.workers) * int64(opts.n)
	coalesced := accepted - atomic.LoadInt64(&presented)
	fmt.Fprintf(os.Stdout, "dispatched=%d accepted=%d dropped=%d presented=%d coalesced=%d elapsed=%s\n",
		total, accepted, dropped, atomic.LoadInt64(&presented), coalesced, elapsed)
	return nil
}
