package dispatcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chess-move-overlay/annotation"
	"chess-move-overlay/uiloop"
)

// manualPoster queues callbacks so tests control exactly when the "UI
// thread" ticks.
type manualPoster struct {
	mu     sync.Mutex
	queue  []func()
	reject bool
}

func (p *manualPoster) Post(fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reject {
		return false
	}
	p.queue = append(p.queue, fn)
	return true
}

func (p *manualPoster) tick() {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}
	fn := p.queue[0]
	p.queue = p.queue[1:]
	p.mu.Unlock()
	fn()
}

func (p *manualPoster) pendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func mustAnnotation(t *testing.T, label, best string) annotation.MoveAnnotation {
	t.Helper()
	a, err := annotation.New(label, best)
	if err != nil {
		t.Fatalf("annotation.New: %v", err)
	}
	return a
}

func TestDispatchBeforeInitIsNoOp(t *testing.T) {
	Teardown()
	if Dispatch(mustAnnotation(t, "good", "e4")) {
		t.Error("Dispatch before Init should report failure")
	}
}

func TestDoubleInitIsReported(t *testing.T) {
	t.Cleanup(Teardown)
	p := &manualPoster{}
	if err := Init(p, func(annotation.MoveAnnotation) {}); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Init(p, func(annotation.MoveAnnotation) {}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init = %v, want ErrAlreadyInitialized", err)
	}
}

func TestDispatchDeliversOnNextTick(t *testing.T) {
	t.Cleanup(Teardown)
	p := &manualPoster{}
	var got []annotation.MoveAnnotation
	if err := Init(p, func(a annotation.MoveAnnotation) { got = append(got, a) }); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	a := mustAnnotation(t, "blunder", "Qxf2#")
	if !Dispatch(a) {
		t.Fatal("Dispatch rejected")
	}
	if len(got) != 0 {
		t.Fatal("presentation must not run on the caller's thread")
	}
	p.tick()
	if len(got) != 1 || got[0].Label != annotation.Blunder || got[0].BestMove != "Qxf2#" {
		t.Errorf("presented = %v, want the dispatched annotation", got)
	}
}

func TestLatestValueWins(t *testing.T) {
	t.Cleanup(Teardown)
	p := &manualPoster{}
	var got []annotation.MoveAnnotation
	if err := Init(p, func(a annotation.MoveAnnotation) { got = append(got, a) }); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Dispatch(mustAnnotation(t, "good", "e4"))
	Dispatch(mustAnnotation(t, "mistake", "f3"))
	Dispatch(mustAnnotation(t, "blunder", "Ke2"))

	// Overlapping dispatches coalesce into a single scheduled drain.
	if n := p.pendingCount(); n != 1 {
		t.Fatalf("pending drains = %d, want 1", n)
	}
	p.tick()
	if len(got) != 1 || got[0].Label != annotation.Blunder {
		t.Errorf("presented = %v, want only the last dispatch", got)
	}

	// The slot is empty again: a fresh dispatch schedules a fresh drain.
	Dispatch(mustAnnotation(t, "best", "d4"))
	p.tick()
	if len(got) != 2 || got[1].Label != annotation.Best {
		t.Errorf("presented = %v, want the follow-up dispatch delivered", got)
	}
}

func TestRejectedPostIsReportedAndRecovered(t *testing.T) {
	t.Cleanup(Teardown)
	p := &manualPoster{reject: true}
	var got []annotation.MoveAnnotation
	if err := Init(p, func(a annotation.MoveAnnotation) { got = append(got, a) }); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if Dispatch(mustAnnotation(t, "good", "e4")) {
		t.Error("Dispatch should report a rejected post")
	}

	// A later dispatch after the loop recovers schedules normally.
	p.mu.Lock()
	p.reject = false
	p.mu.Unlock()
	if !Dispatch(mustAnnotation(t, "best", "d4")) {
		t.Fatal("Dispatch after recovery rejected")
	}
	p.tick()
	if len(got) != 1 || got[0].Label != annotation.Best {
		t.Errorf("presented = %v, want the recovered dispatch", got)
	}
}

func TestTeardownAllowsCleanReinit(t *testing.T) {
	t.Cleanup(Teardown)
	p := &manualPoster{}
	if err := Init(p, func(annotation.MoveAnnotation) {}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Dispatch(mustAnnotation(t, "good", "e4"))
	Teardown()

	// The drain scheduled before Teardown must be a harmless no-op.
	p.tick()

	var got []annotation.MoveAnnotation
	if err := Init(p, func(a annotation.MoveAnnotation) { got = append(got, a) }); err != nil {
		t.Fatalf("re-Init failed: %v", err)
	}
	Dispatch(mustAnnotation(t, "forced", "Kg1"))
	p.tick()
	if len(got) != 1 || got[0].Label != annotation.Forced {
		t.Errorf("presented = %v, want post-reinit dispatch", got)
	}
}

func TestConcurrentDispatchFromManyGoroutines(t *testing.T) {
	t.Cleanup(Teardown)
	loop := uiloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	var mu sync.Mutex
	presented := 0
	if err := Init(loop, func(annotation.MoveAnnotation) {
		mu.Lock()
		presented++
		mu.Unlock()
	}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	a := mustAnnotation(t, "good", "e4")
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				Dispatch(a)
			}
		}()
	}
	wg.Wait()
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if presented == 0 {
		t.Error("nothing was presented")
	}
	if presented > 16*100 {
		t.Errorf("presented = %d, more than dispatched", presented)
	}
}
