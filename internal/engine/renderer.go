package engine

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
)

// lineRadius converts a line thickness to a cylinder radius in world
// units. Thickness 1 and below is drawn as a hairline.
const lineRadius = 0.008

// Renderer draws a scene graph through a Z-up perspective camera
type Renderer struct {
	camera     rl.Camera3D
	background rl.Color
}

// NewRenderer creates a renderer with the given vertical field of view
func NewRenderer(fovy float32, background color.RGBA) *Renderer {
	return &Renderer{
		camera: rl.Camera3D{
			Up:         rl.Vector3{X: 0, Y: 0, Z: 1},
			Fovy:       fovy,
			Projection: rl.CameraPerspective,
		},
		background: rl.NewColor(background.R, background.G, background.B, background.A),
	}
}

// SetCamera places the camera at pos looking at target
func (r *Renderer) SetCamera(pos, target geometry.Vector3) {
	r.camera.Position = vec(pos)
	r.camera.Target = vec(target)
}

// BeginFrame starts drawing and renders every node of g. The frame stays
// open until EndFrame so callers can read the framebuffer.
func (r *Renderer) BeginFrame(g *scene.Graph) {
	rl.BeginDrawing()
	rl.ClearBackground(r.background)

	nodes := g.Nodes()

	rl.BeginMode3D(r.camera)
	for _, n := range nodes {
		switch n.Kind {
		case scene.KindModel:
			drawModel(n)
		case scene.KindLines:
			drawLines(n)
		}
	}
	rl.EndMode3D()

	for _, n := range nodes {
		if n.Kind == scene.KindText {
			r.drawText(n)
		}
	}
}

// EndFrame presents the frame
func (r *Renderer) EndFrame() {
	rl.EndDrawing()
}

func drawModel(n *scene.Node) {
	m, ok := n.Asset.(*Model)
	if !ok {
		return
	}
	rl.DrawModel(m.model, vec(n.Pos), float32(n.Scale), tint(n.Color))
}

func drawLines(n *scene.Node) {
	for _, s := range n.Segments {
		from := vec(n.Pos.Add(s.From.Mul(n.Scale)))
		to := vec(n.Pos.Add(s.To.Mul(n.Scale)))
		c := tint(s.Color)
		if s.Thickness <= 1 {
			rl.DrawLine3D(from, to, c)
			continue
		}
		radius := float32(s.Thickness * lineRadius)
		rl.DrawCylinderEx(from, to, radius, radius, 8, c)
	}
}

// drawText projects a billboard label to the screen. The font size is
// the projected height of the node scale so labels shrink with distance.
func (r *Renderer) drawText(n *scene.Node) {
	if r.behind(n.Pos) {
		return
	}
	base := rl.GetWorldToScreen(vec(n.Pos), r.camera)
	top := rl.GetWorldToScreen(vec(n.Pos.Add(geometry.NewVector3(0, 0, n.Scale))), r.camera)
	size := int32(math.Round(math.Hypot(float64(top.X-base.X), float64(top.Y-base.Y))))
	if size < 8 {
		size = 8
	}

	x := int32(base.X)
	switch n.Align {
	case scene.AlignCenter:
		x -= rl.MeasureText(n.Text, size) / 2
	case scene.AlignRight:
		x -= rl.MeasureText(n.Text, size)
	}
	rl.DrawText(n.Text, x, int32(base.Y)-size/2, size, tint(n.Color))
}

// behind reports whether p lies behind the camera plane
func (r *Renderer) behind(p geometry.Vector3) bool {
	pos := geometry.NewVector3(float64(r.camera.Position.X), float64(r.camera.Position.Y), float64(r.camera.Position.Z))
	target := geometry.NewVector3(float64(r.camera.Target.X), float64(r.camera.Target.Y), float64(r.camera.Target.Z))
	return p.Sub(pos).Dot(target.Sub(pos)) <= 0
}

func vec(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func tint(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
