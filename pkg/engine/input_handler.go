package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"globe/pkg/globe"
)

// trackedKeys are the keys polled for shortcuts each frame
var trackedKeys = []glfw.Key{
	glfw.KeySpace,
	glfw.KeyS,
	glfw.KeyR,
	glfw.KeyEscape,
}

// InputHandler feeds window events into the world. Pointer, button, scroll
// and resize events arrive through GLFW callbacks during PollEvents; keys
// are polled once per frame for edge detection.
type InputHandler struct {
	window          *glfw.Window
	world           *globe.World
	currentKeys     map[glfw.Key]bool
	previousKeys    map[glfw.Key]bool
	mouseWheelDelta float64
}

// NewInputHandler installs the window callbacks
func NewInputHandler(window *glfw.Window, world *globe.World) *InputHandler {
	handler := &InputHandler{
		window:       window,
		world:        world,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}

	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		world.PointerMove(x, y)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			world.Orbit.BeginDrag(w.GetCursorPos())
		case glfw.Release:
			world.Orbit.EndDrag()
		}
	})

	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handler.mouseWheelDelta += yoffset
	})

	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		world.Resize(width, height)
	})

	return handler
}

// Update snapshots key state and forwards the accumulated wheel motion
func (ih *InputHandler) Update() {
	ih.previousKeys, ih.currentKeys = ih.currentKeys, ih.previousKeys
	for _, key := range trackedKeys {
		ih.currentKeys[key] = ih.window.GetKey(key) == glfw.Press
	}

	if delta := ih.GetMouseWheelDelta(); delta != 0 {
		ih.world.Orbit.Scroll(delta)
	}
}

// IsKeyDown reports whether a key is held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed reports whether a key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// GetMouseWheelDelta returns the wheel motion since the last call
func (ih *InputHandler) GetMouseWheelDelta() float64 {
	delta := ih.mouseWheelDelta
	ih.mouseWheelDelta = 0
	return delta
}
