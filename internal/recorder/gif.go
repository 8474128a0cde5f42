package recorder

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// delay converts a playback rate into a GIF frame delay in 1/100 s
func delay(fps int) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Round(100 / float64(fps)))
}

// scaleToWidth shrinks img to at most width pixels wide, keeping the
// aspect ratio. width <= 0 disables scaling.
func scaleToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img
	}
	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// paletted dithers img onto the web-safe palette
func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.WebSafe)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), img, b.Min)
	return dst
}

// EncodeGIF builds a looping animation from frames
func EncodeGIF(frames []image.Image, fps, maxWidth int) *gif.GIF {
	anim := &gif.GIF{LoopCount: 0}
	d := delay(fps)
	for _, f := range frames {
		anim.Image = append(anim.Image, paletted(scaleToWidth(f, maxWidth)))
		anim.Delay = append(anim.Delay, d)
	}
	return anim
}

// WriteGIF encodes frames to path, replacing any existing file
func WriteGIF(path string, frames []image.Image, fps, maxWidth int) error {
	if len(frames) == 0 {
		return fmt.Errorf("write %s: no frames", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create gif: %w", err)
	}
	if err := gif.EncodeAll(f, EncodeGIF(frames, fps, maxWidth)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	return f.Close()
}
