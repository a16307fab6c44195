// Package palette turns escape-time counts into colors.
package palette

import (
	"image"
	"image/color"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
)

// Color paints points that never escaped black and cycles the channels at
// different rates for the rest.
func Color(iteration, maxIter int) color.RGBA {
	if iteration >= maxIter {
		return color.RGBA{A: 255}
	}
	return color.RGBA{
		R: uint8(iteration % 256),
		G: uint8((iteration * 2) % 256),
		B: uint8((iteration * 5) % 256),
		A: 255,
	}
}

// Image renders f into a new RGBA image of the same size.
func Image(f *escape.Field) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x, n := range f.Row(y) {
			img.SetRGBA(x, y, Color(int(n), f.MaxIter))
		}
	}
	return img
}

// PutRGBA8888 writes f into locked texture memory in SDL's packed RGBA8888
// layout (A, B, G, R in byte order on little-endian hosts). pitch is the
// length of one texture row in bytes.
func PutRGBA8888(dst []byte, pitch int, f *escape.Field) {
	for y := 0; y < f.Height; y++ {
		line := dst[y*pitch:]
		for x, n := range f.Row(y) {
			c := Color(int(n), f.MaxIter)
			line[x*4+3] = c.R
			line[x*4+2] = c.G
			line[x*4+1] = c.B
			line[x*4+0] = c.A
		}
	}
}
