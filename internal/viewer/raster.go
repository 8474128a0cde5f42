package viewer

import (
	"image"
	"image/color"
	"math"
)

// canvas is an RGBA image with a depth buffer
type canvas struct {
	img   *image.RGBA
	depth []float64
}

func newCanvas(width, height int, bg color.RGBA) *canvas {
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.img.SetRGBA(x, y, bg)
		}
	}
	return c
}

// plot draws one pixel if it is closer than what is already there.
// Translucent pixels are blended and leave the depth buffer alone.
func (c *canvas) plot(x, y int, z float64, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	idx := y*c.img.Rect.Dx() + x
	if z >= c.depth[idx] {
		return
	}
	if col.A == 255 {
		c.depth[idx] = z
		c.img.SetRGBA(x, y, col)
		return
	}
	c.img.SetRGBA(x, y, blend(c.img.RGBAAt(x, y), col))
}

// blend composites straight alpha src over dst
func blend(dst, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

// fillTriangle fills a screen space triangle with depth testing. Each
// vertex is x, y, depth.
func (c *canvas) fillTriangle(v1, v2, v3 [3]float64, col color.RGBA) {
	// Sort vertices by Y coordinate (top to bottom)
	if v1[1] > v2[1] {
		v1, v2 = v2, v1
	}
	if v2[1] > v3[1] {
		v2, v3 = v3, v2
	}
	if v1[1] > v2[1] {
		v1, v2 = v2, v1
	}

	bounds := c.img.Rect
	edges := [3][2][3]float64{{v1, v2}, {v2, v3}, {v1, v3}}

	for y := int(math.Max(0, math.Ceil(v1[1]))); y <= int(math.Min(float64(bounds.Max.Y-1), v3[1])); y++ {
		fy := float64(y)

		// Intersections with the triangle edges
		var xs, zs [2]float64
		found := 0
		for _, e := range edges {
			a, b := e[0], e[1]
			if a[1] == b[1] || fy < a[1] || fy > b[1] || found == 2 {
				continue
			}
			t := (fy - a[1]) / (b[1] - a[1])
			xs[found] = a[0] + t*(b[0]-a[0])
			zs[found] = a[2] + t*(b[2]-a[2])
			found++
		}
		if found < 2 {
			continue
		}
		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		for x := int(math.Max(0, math.Ceil(xs[0]))); x <= int(math.Min(float64(bounds.Max.X-1), xs[1])); x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			c.plot(x, y, zs[0]+t*(zs[1]-zs[0]), col)
		}
	}
}

// drawLine draws a depth tested line using Bresenham's algorithm. Lines
// wider than one pixel are stamped as squares along the path.
func (c *canvas) drawLine(x1, y1 int, z1 float64, x2, y2 int, z2 float64, width int, col color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	steps := max(dx, dy)
	lo := -(width - 1) / 2
	hi := width / 2

	err := dx - dy
	for i := 0; ; i++ {
		z := z1
		if steps > 0 {
			z = z1 + (z2-z1)*float64(i)/float64(steps)
		}
		for oy := lo; oy <= hi; oy++ {
			for ox := lo; ox <= hi; ox++ {
				c.plot(x1+ox, y1+oy, z, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillDisc draws a shaded disc, brighter in the middle
func (c *canvas) fillDisc(cx, cy, z, radius float64, col color.RGBA) {
	r2 := radius * radius
	for y := int(math.Floor(cy - radius)); y <= int(math.Ceil(cy+radius)); y++ {
		for x := int(math.Floor(cx - radius)); x <= int(math.Ceil(cx+radius)); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			shade := 0.6 + 0.4*math.Sqrt(1-d2/r2)
			c.plot(x, y, z, scale(col, shade))
		}
	}
}

func scale(col color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(col.R) * f),
		G: uint8(float64(col.G) * f),
		B: uint8(float64(col.B) * f),
		A: col.A,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
