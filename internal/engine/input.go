package engine

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/space3d/internal/camera"
	"github.com/philipparndt/space3d/internal/control"
)

// Cursor returns the mouse position normalized to [-1, 1] with y up.
// ok is false when the pointer is outside the window.
func Cursor() (camera.Cursor, bool) {
	if !rl.IsCursorOnScreen() {
		return camera.Cursor{}, false
	}
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		return camera.Cursor{}, false
	}
	p := rl.GetMousePosition()
	return camera.Cursor{
		X: 2*float64(p.X)/w - 1,
		Y: 1 - 2*float64(p.Y)/h,
	}, true
}

// PollEvents collects the input of the current frame
func PollEvents() []control.Event {
	var events []control.Event
	cursor, ok := Cursor()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		events = append(events, control.Event{Kind: control.MouseDown, Cursor: cursor, OnWindow: ok})
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		events = append(events, control.Event{Kind: control.MouseUp, Cursor: cursor, OnWindow: ok})
	}

	switch wheel := rl.GetMouseWheelMove(); {
	case wheel > 0:
		events = append(events, control.Event{Kind: control.WheelUp})
	case wheel < 0:
		events = append(events, control.Event{Kind: control.WheelDown})
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if name := keyName(key); name != "" {
			events = append(events, control.Event{Kind: control.KeyPress, Key: name})
		}
	}
	return events
}

// keyName maps a raylib key code to the name used in key bindings
func keyName(key int32) string {
	switch {
	case key >= rl.KeyA && key <= rl.KeyZ:
		return string(rune('a' + key - rl.KeyA))
	case key >= rl.KeyZero && key <= rl.KeyNine:
		return string(rune('0' + key - rl.KeyZero))
	case key >= rl.KeyF1 && key <= rl.KeyF12:
		return fmt.Sprintf("f%d", key-rl.KeyF1+1)
	}
	switch key {
	case rl.KeySpace:
		return "space"
	case rl.KeyEscape:
		return "escape"
	case rl.KeyEnter:
		return "enter"
	case rl.KeyTab:
		return "tab"
	}
	return ""
}
