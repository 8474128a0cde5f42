// Package viewer renders a scene graph in software. It draws the same
// nodes as the window without a GPU, for exports and tests.
package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/philipparndt/space3d/pkg/openscad"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Sphere is the built-in unit sphere asset
type Sphere struct{}

func (Sphere) Release() {}

// Mesh is a triangle mesh asset
type Mesh struct {
	Triangles []geometry.Triangle
}

func (*Mesh) Release() {}

// Loader resolves the sphere path, STL and OpenSCAD files
type Loader struct{}

// Load implements scene.Loader
func (Loader) Load(path string) (scene.Asset, error) {
	if path == scene.SpherePath {
		return Sphere{}, nil
	}
	if !openscad.IsMesh(path) {
		return nil, fmt.Errorf("unsupported model format: %s", path)
	}
	model, err := openscad.LoadMesh(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return &Mesh{Triangles: model.Triangles}, nil
}

// Renderer draws scene graphs into images of a fixed size
type Renderer struct {
	Width      int
	Height     int
	Background color.RGBA
	Face       font.Face
}

// NewRenderer creates a renderer labeling text with the basic 7×13 face
func NewRenderer(width, height int, bg color.RGBA) *Renderer {
	return &Renderer{Width: width, Height: height, Background: bg, Face: basicfont.Face7x13}
}

// Render draws every attached node of g as seen from cam
func (r *Renderer) Render(g *scene.Graph, cam Camera) *image.RGBA {
	c := newCanvas(r.Width, r.Height, r.Background)
	nodes := g.Nodes()

	// Opaque geometry first so translucent points blend over it
	for _, n := range nodes {
		switch {
		case n.Kind == scene.KindLines:
			r.drawLines(c, cam, n)
		case n.Kind == scene.KindModel && n.Color.A == 255:
			r.drawModel(c, cam, n)
		}
	}
	for _, n := range nodes {
		if n.Kind == scene.KindModel && n.Color.A < 255 {
			r.drawModel(c, cam, n)
		}
	}
	for _, n := range nodes {
		if n.Kind == scene.KindText {
			r.drawText(c, cam, n)
		}
	}
	return c.img
}

func (r *Renderer) project(cam Camera, p geometry.Vector3) (x, y, depth float64, ok bool) {
	return cam.Project(p, float64(r.Width), float64(r.Height))
}

func (r *Renderer) drawModel(c *canvas, cam Camera, n *scene.Node) {
	switch asset := n.Asset.(type) {
	case Sphere:
		x, y, depth, ok := r.project(cam, n.Pos)
		if !ok {
			return
		}
		radius := math.Max(1, n.Scale*cam.PixelsPerUnit(depth, float64(r.Height)))
		c.fillDisc(x, y, depth, radius, n.Color)
	case *Mesh:
		r.drawMesh(c, cam, n, asset)
	}
}

// drawMesh fills every triangle with flat diffuse shading
func (r *Renderer) drawMesh(c *canvas, cam Camera, n *scene.Node, m *Mesh) {
	lightDir := geometry.NewVector3(-0.5, -0.5, -1.0).Normalize()
	for _, t := range m.Triangles {
		var v [3][3]float64
		visible := true
		for i, p := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			x, y, depth, ok := r.project(cam, n.Pos.Add(p.Mul(n.Scale)))
			if !ok {
				visible = false
				break
			}
			v[i] = [3]float64{x, y, depth}
		}
		if !visible {
			continue
		}

		// Min 30% ambient, max 100% diffuse
		intensity := math.Max(0.3, math.Abs(t.CalculateNormal().Dot(lightDir)))
		base := color.RGBA{R: 100, G: 120, B: 200, A: 255}
		c.fillTriangle(v[0], v[1], v[2], scale(tintWith(base, n.Color), intensity))
	}
}

func (r *Renderer) drawLines(c *canvas, cam Camera, n *scene.Node) {
	for _, s := range n.Segments {
		x1, y1, z1, ok1 := r.project(cam, n.Pos.Add(s.From.Mul(n.Scale)))
		x2, y2, z2, ok2 := r.project(cam, n.Pos.Add(s.To.Mul(n.Scale)))
		if !ok1 || !ok2 {
			continue
		}
		width := max(1, int(math.Round(s.Thickness)))
		c.drawLine(int(math.Round(x1)), int(math.Round(y1)), z1, int(math.Round(x2)), int(math.Round(y2)), z2, width, s.Color)
	}
}

func (r *Renderer) drawText(c *canvas, cam Camera, n *scene.Node) {
	x, y, _, ok := r.project(cam, n.Pos)
	if !ok {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(n.Color),
		Face: r.Face,
	}
	advance := d.MeasureString(n.Text)
	switch n.Align {
	case scene.AlignCenter:
		x -= float64(advance.Round()) / 2
	case scene.AlignRight:
		x -= float64(advance.Round())
	}
	metrics := r.Face.Metrics()
	baseline := y + float64((metrics.Ascent-metrics.Descent).Round())/2
	d.Dot = fixed.P(int(math.Round(x)), int(math.Round(baseline)))
	d.DrawString(n.Text)
}

// tintWith multiplies base by tint channel-wise
func tintWith(base, tint color.RGBA) color.RGBA {
	mul := func(a, b uint8) uint8 { return uint8(uint32(a) * uint32(b) / 255) }
	return color.RGBA{R: mul(base.R, tint.R), G: mul(base.G, tint.G), B: mul(base.B, tint.B), A: 255}
}
