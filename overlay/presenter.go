// Package overlay owns the on-screen annotation window: its visibility
// state machine, auto-hide timing, and drag-to-reposition handling. The
// presenter is the sole mutator of overlay state and every method MUST be
// invoked only from the UI loop goroutine.
package overlay

import (
	"log"
	"time"

	"chess-move-overlay/annotation"
	"chess-move-overlay/config"
)

// State is the presenter's visibility state.
type State int

const (
	Hidden State = iota
	Visible
	Dragging
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case Visible:
		return "Visible"
	case Dragging:
		return "Dragging"
	}
	return "Unknown"
}

// Poster posts callbacks onto the UI loop. The auto-hide timer fires on a
// runtime timer goroutine and must re-enter the loop through it.
type Poster interface {
	Post(fn func()) bool
}

// Presenter drives the overlay renderer from annotations and config.
type Presenter struct {
	store    *config.Store
	renderer Renderer
	loop     Poster

	state State
	x, y  int
	frame Frame

	hideTimer *time.Timer
	// timerGen invalidates stale timer fires: a fire whose generation no
	// longer matches was superseded or cancelled after it was armed.
	timerGen uint64

	dragOffsetX int
	dragOffsetY int
}

// NewPresenter creates a presenter starting Hidden at the position
// persisted in the config.
func NewPresenter(store *config.Store, renderer Renderer, loop Poster) *Presenter {
	cfg := store.Get()
	p := &Presenter{
		store:    store,
		renderer: renderer,
		loop:     loop,
		state:    Hidden,
		x:        cfg.PositionX,
		y:        cfg.PositionY,
	}
	log.Printf("Overlay: position loaded (%d, %d)", p.x, p.y)
	return p
}

// State returns the current visibility state.
func (p *Presenter) State() State { return p.state }

// Position returns the overlay's current top-left screen position.
func (p *Presenter) Position() (x, y int) { return p.x, p.y }

// Display shows the annotation, superseding whatever is currently on
// screen. Idempotent: displaying the same annotation twice produces the
// same visible frame and exactly one live auto-hide timer.
func (p *Presenter) Display(a annotation.MoveAnnotation) {
	if p.state == Dragging {
		// Do not fight the user's hand; the new frame still replaces the
		// content but the drag keeps its grip and its suspended timer.
		cfg := p.store.Get()
		p.frame = BuildFrame(a, cfg)
		p.renderer.Show(p.frame)
		log.Printf("Overlay: frame replaced mid-drag (%s)", a.Label)
		return
	}

	cfg := p.store.Get()
	p.cancelHideTimer()
	p.frame = BuildFrame(a, cfg)
	p.renderer.MoveTo(p.x, p.y)
	p.renderer.Show(p.frame)
	p.state = Visible
	p.armHideTimer(cfg.AutoHideDelayMs)
	log.Printf("Overlay: displaying %s | best=%s", a.Label, a.BestMove)
}

// Hide takes the overlay down immediately, cancelling any pending
// auto-hide.
func (p *Presenter) Hide() {
	if p.state == Hidden {
		return
	}
	p.cancelHideTimer()
	p.renderer.Hide()
	p.state = Hidden
	log.Printf("Overlay: hidden")
}

// PressAt begins a drag at the given screen point. No-op unless the
// overlay is visible and the position is unlocked. The auto-hide timer is
// suspended for the duration of the drag.
func (p *Presenter) PressAt(x, y int) {
	if p.state != Visible {
		return
	}
	cfg := p.store.Get()
	if cfg.LockPosition {
		return
	}
	p.cancelHideTimer()
	p.dragOffsetX = x - p.x
	p.dragOffsetY = y - p.y
	p.state = Dragging
}

// MoveTo continues a drag: the overlay follows the pointer, keeping the
// grab offset.
func (p *Presenter) MoveTo(x, y int) {
	if p.state != Dragging {
		return
	}
	p.x = x - p.dragOffsetX
	p.y = y - p.dragOffsetY
	p.renderer.MoveTo(p.x, p.y)
}

// Release ends a drag, persists the new position, and re-arms the
// auto-hide timer.
func (p *Presenter) Release() {
	if p.state != Dragging {
		return
	}
	p.state = Visible
	p.persistPosition()
	cfg := p.store.Get()
	p.armHideTimer(cfg.AutoHideDelayMs)
}

// ResetPosition moves the overlay to the center of the screen and
// persists the new coordinates. Available from Hidden or Visible.
func (p *Presenter) ResetPosition() {
	if p.state == Dragging {
		return
	}
	cfg := p.store.Get()
	sw, sh := p.renderer.ScreenSize()
	p.x = (sw - cfg.OverlayWidth) / 2
	p.y = (sh - cfg.OverlayHeight) / 2
	if p.state == Visible {
		p.renderer.MoveTo(p.x, p.y)
	}
	p.persistPosition()
	log.Printf("Overlay: position reset to center (%d, %d)", p.x, p.y)
}

func (p *Presenter) persistPosition() {
	cfg := p.store.Get()
	cfg.PositionX = p.x
	cfg.PositionY = p.y
	if err := p.store.Save(cfg); err != nil {
		log.Printf("Overlay: failed to persist position: %v", err)
		return
	}
	log.Printf("Overlay: position saved (%d, %d)", p.x, p.y)
}

// armHideTimer schedules the transition back to Hidden. delayMs <= 0
// means never hide. The fire path re-enters the UI loop via Post and is
// generation-checked so a superseded timer cannot hide a newer frame.
func (p *Presenter) armHideTimer(delayMs int) {
	if delayMs <= 0 {
		return
	}
	p.timerGen++
	gen := p.timerGen
	p.hideTimer = time.AfterFunc(time.Duration(delayMs)*time.Millisecond, func() {
		p.loop.Post(func() {
			if p.timerGen != gen {
				return
			}
			p.Hide()
		})
	})
}

// cancelHideTimer stops the pending timer, if any, and invalidates any
// fire already in flight.
func (p *Presenter) cancelHideTimer() {
	p.timerGen++
	if p.hideTimer != nil {
		p.hideTimer.Stop()
		p.hideTimer = nil
	}
}
