package visual

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input collects key and mouse presses from glfw callbacks between frames
// and tracks held keys for edge detection.
type Input struct {
	prevKeys map[glfw.Key]bool
	keys     []glfw.Key
	clicked  bool
}

// NewInput installs callbacks on window. Callbacks run inside
// glfw.PollEvents on the main thread.
func NewInput(window *glfw.Window) *Input {
	in := &Input{prevKeys: make(map[glfw.Key]bool)}
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			in.keys = append(in.keys, key)
		}
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, _ glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			in.clicked = true
		}
	})
	return in
}

// JustPressed reports a key that is down now and was not on the last call.
func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Drain returns the keys pressed since the last call and whether a mouse
// button was pressed.
func (in *Input) Drain() (keys []glfw.Key, clicked bool) {
	keys, clicked = in.keys, in.clicked
	in.keys, in.clicked = nil, false
	return keys, clicked
}

// DigitRune maps the number row and keypad digits to '0'..'9'.
func DigitRune(k glfw.Key) (rune, bool) {
	switch {
	case k >= glfw.Key0 && k <= glfw.Key9:
		return '0' + rune(k-glfw.Key0), true
	case k >= glfw.KeyKP0 && k <= glfw.KeyKP9:
		return '0' + rune(k-glfw.KeyKP0), true
	}
	return 0, false
}
