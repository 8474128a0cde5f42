package scene

import (
	"image/color"

	"github.com/philipparndt/space3d/pkg/geometry"
)

// LineSegs collects pen strokes into segments. Color and thickness
// apply to segments drawn after they are set.
type LineSegs struct {
	name      string
	color     color.RGBA
	thickness float64
	pen       geometry.Vector3
	segments  []Segment
}

// NewLineSegs returns a builder with a white pen of thickness 1
func NewLineSegs(name string) *LineSegs {
	return &LineSegs{
		name:      name,
		color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		thickness: 1,
	}
}

func (ls *LineSegs) SetColor(c color.RGBA) {
	ls.color = c
}

func (ls *LineSegs) SetThickness(t float64) {
	ls.thickness = t
}

// MoveTo lifts the pen and places it at p
func (ls *LineSegs) MoveTo(p geometry.Vector3) {
	ls.pen = p
}

// DrawTo draws from the pen position to p and leaves the pen at p
func (ls *LineSegs) DrawTo(p geometry.Vector3) {
	ls.segments = append(ls.segments, Segment{
		From:      ls.pen,
		To:        p,
		Color:     ls.color,
		Thickness: ls.thickness,
	})
	ls.pen = p
}

// Len returns the number of collected segments
func (ls *LineSegs) Len() int {
	return len(ls.segments)
}

// TextNode describes a label for Graph.AttachText
type TextNode struct {
	Name      string
	Text      string
	Color     color.RGBA
	Align     Align
	Billboard bool
}
