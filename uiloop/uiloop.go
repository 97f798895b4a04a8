// Package uiloop provides the single-threaded UI event loop. The
// goroutine running Run is the only context allowed to touch overlay
// state; everything else reaches it through Post. This stands in for the
// "run on the GUI thread" primitive a real GUI runtime would provide.
package uiloop

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// Loop executes posted tasks in order on a single goroutine.
type Loop struct {
	tasks   chan func()
	stopped atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// New creates a loop. The task queue is buffered; Post never blocks.
func New() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled. It must be called exactly
// once; the calling goroutine becomes the UI thread.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() {
		l.stopped.Store(true)
		close(l.done)
	})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Post schedules fn to run on the loop's next free tick. Safe to call
// from any goroutine; never blocks. Returns false if the loop has stopped
// or its queue is saturated, in which case fn will not run.
func (l *Loop) Post(fn func()) bool {
	if l.stopped.Load() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	default:
		log.Printf("UI loop: task queue saturated, dropping task")
		return false
	}
}

// Done is closed when Run has returned. Useful for shutdown sequencing in
// tests and in the resident binary.
func (l *Loop) Done() <-chan struct{} { return l.done }
