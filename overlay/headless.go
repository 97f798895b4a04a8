package overlay

import "sync"

// HeadlessRenderer is a renderer with no windowing system behind it. It
// records what would have been drawn, for tests and for running the
// resident binary on machines without a display. A platform renderer
// satisfying Renderer slots in without touching the presenter.
type HeadlessRenderer struct {
	mu      sync.Mutex
	visible bool
	frame   Frame
	x, y    int
	screenW int
	screenH int
}

// NewHeadlessRenderer creates a headless renderer reporting the given
// screen size (1920x1080 when zero).
func NewHeadlessRenderer(screenW, screenH int) *HeadlessRenderer {
	if screenW <= 0 || screenH <= 0 {
		screenW, screenH = 1920, 1080
	}
	return &HeadlessRenderer{screenW: screenW, screenH: screenH}
}

func (r *HeadlessRenderer) Show(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
	r.frame = f
}

func (r *HeadlessRenderer) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
}

func (r *HeadlessRenderer) MoveTo(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y = x, y
}

func (r *HeadlessRenderer) ScreenSize() (int, int) {
	return r.screenW, r.screenH
}

// Visible reports whether the overlay is currently shown.
func (r *HeadlessRenderer) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// LastFrame returns the most recently shown frame.
func (r *HeadlessRenderer) LastFrame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// WindowPosition returns where the overlay was last moved.
func (r *HeadlessRenderer) WindowPosition() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y
}
