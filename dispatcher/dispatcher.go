// Package dispatcher is the handoff point between analysis workers and
// the UI loop. Any goroutine may call Dispatch; the annotation lands in a
// single latest-wins slot and is presented on the UI loop's next tick.
// Overlapping dispatches coalesce: intermediate values are dropped and
// the last one renders. This is a deliberate product decision, not a bug;
// see DESIGN.md if no-loss delivery ever becomes a requirement.
package dispatcher

import (
	"errors"
	"log"
	"sync"

	"chess-move-overlay/annotation"
)

// Poster schedules a callback onto the UI loop. uiloop.Loop satisfies it.
type Poster interface {
	Post(fn func()) bool
}

// PresentFunc receives the annotation on the UI loop. Typically this is
// the overlay presenter's Display method.
type PresentFunc func(annotation.MoveAnnotation)

// Lifecycle misuse sentinels.
var (
	ErrAlreadyInitialized = errors.New("dispatcher already initialized")
	ErrNotInitialized     = errors.New("dispatcher not initialized")
)

// The dispatcher is process-wide state with an explicit lifecycle so
// tests can tear it down and re-init between runs.
var (
	mu             sync.Mutex
	poster         Poster
	present        PresentFunc
	pending        *annotation.MoveAnnotation
	drainScheduled bool
)

// Init wires the dispatcher to the UI loop. Must be called once, from the
// UI loop's goroutine, before any Dispatch. A second Init is reported and
// ignored.
func Init(p Poster, fn PresentFunc) error {
	mu.Lock()
	defer mu.Unlock()
	if poster != nil {
		log.Printf("Dispatcher: Init called twice, ignoring")
		return ErrAlreadyInitialized
	}
	poster = p
	present = fn
	log.Printf("Dispatcher: initialized")
	return nil
}

// Dispatch hands an annotation to the UI loop and returns immediately.
// Safe to call from any goroutine. Returns false when the dispatcher is
// not initialized or the UI loop refused the callback; both conditions
// are logged, never fatal, so a worker thread can never be brought down
// by a presentation-layer ordering mistake.
func Dispatch(a annotation.MoveAnnotation) bool {
	mu.Lock()
	if poster == nil {
		mu.Unlock()
		log.Printf("Dispatcher: Dispatch before Init, dropping %s", a)
		return false
	}
	pending = &a
	if drainScheduled {
		// A drain is already on its way to the loop; it will pick up
		// this newer value. Latest wins.
		mu.Unlock()
		return true
	}
	drainScheduled = true
	p := poster
	mu.Unlock()

	if !p.Post(drain) {
		mu.Lock()
		drainScheduled = false
		mu.Unlock()
		log.Printf("Dispatcher: UI loop rejected callback, dropping %s", a)
		return false
	}
	log.Printf("Dispatcher: dispatched %s", a)
	return true
}

// drain runs on the UI loop: it takes whatever annotation is newest in
// the slot and presents it.
func drain() {
	mu.Lock()
	a := pending
	fn := present
	pending = nil
	drainScheduled = false
	mu.Unlock()
	if a == nil || fn == nil {
		// Teardown raced the scheduled drain; nothing to show.
		return
	}
	fn(*a)
}

// Teardown releases the singleton so a later Init can run cleanly. Any
// annotation still in the slot is dropped.
func Teardown() {
	mu.Lock()
	defer mu.Unlock()
	if poster == nil {
		log.Printf("Dispatcher: Teardown without Init")
		return
	}
	poster = nil
	present = nil
	pending = nil
	drainScheduled = false
	log.Printf("Dispatcher: torn down")
}

// Initialized reports whether Init has been called. Intended for boundary
// checks in the resident binary, not for synchronization.
func Initialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return poster != nil
}
