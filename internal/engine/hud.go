package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	badgeFontSize = 20
	badgePadding  = 6
)

// DrawStatus renders a bordered badge in the top left corner. Call it
// after frame captures so the badge does not end up in recordings.
func (r *Renderer) DrawStatus(text string) {
	width := rl.MeasureText(text, badgeFontSize)
	rect := rl.Rectangle{
		X:      10,
		Y:      10,
		Width:  float32(width + 2*badgePadding),
		Height: float32(badgeFontSize + 2*badgePadding),
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, 2, rl.Red)
	rl.DrawText(text, int32(rect.X)+badgePadding, int32(rect.Y)+badgePadding, badgeFontSize, rl.Red)
}
