package overlay

// Renderer is the drawing backend behind the presenter. Implementations
// wrap whatever GUI runtime the platform provides; the presenter never
// talks to a windowing system directly. All methods are invoked from the
// UI loop goroutine only.
type Renderer interface {
	// Show makes the overlay visible with the given frame. Calling Show
	// while already visible replaces the displayed frame in place.
	Show(f Frame)

	// Hide removes the overlay from the screen.
	Hide()

	// MoveTo positions the overlay's top-left corner in screen
	// coordinates.
	MoveTo(x, y int)

	// ScreenSize reports the dimensions of the screen the overlay lives
	// on, for computing the default centered position.
	ScreenSize() (width, height int)
}
