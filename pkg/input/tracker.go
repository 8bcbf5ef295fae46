package input

// Pointer is the last normalized cursor position. Valid is false until the
// first movement is seen.
type Pointer struct {
	X, Y  float64
	Valid bool
}

// Tracker normalizes cursor positions against the current viewport size
type Tracker struct {
	width, height int
	pointer       Pointer
}

// NewTracker creates a tracker for a viewport of width x height pixels
func NewTracker(width, height int) *Tracker {
	return &Tracker{width: width, height: height}
}

// Resize updates the viewport size used for normalization
func (t *Tracker) Resize(width, height int) {
	t.width = width
	t.height = height
}

// Move records a cursor position in viewport pixels.
// y is offset by +1 rather than -1; the parallax tilt depends on it.
func (t *Tracker) Move(px, py float64) {
	if t.width <= 0 || t.height <= 0 {
		return
	}
	t.pointer = Pointer{
		X:     (px/float64(t.width))*2 - 1,
		Y:     (py/float64(t.height))*2 + 1,
		Valid: true,
	}
}

// Pointer returns the raw pointer state
func (t *Tracker) Pointer() Pointer {
	return t.pointer
}

// Value returns the normalized position, or (0, 0) before any movement
func (t *Tracker) Value() (x, y float64) {
	if !t.pointer.Valid {
		return 0, 0
	}
	return t.pointer.X, t.pointer.Y
}
