package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/palette"
)

// canvas holds the streaming texture the latest field is painted into.
type canvas struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture
	w        int
	h        int
}

func newCanvas(r *sdl.Renderer, w, h int) (*canvas, error) {
	t, err := r.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING, // only textures with TEXTUREACCESS_STREAMING can be locked
		int32(w),
		int32(h),
	)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	return &canvas{
		renderer: r,
		texture:  t,
		w:        w,
		h:        h,
	}, nil
}

func (c *canvas) close() {
	c.texture.Destroy()
}

// upload copies a whole field into the texture.
func (c *canvas) upload(f *escape.Field) error {
	if f.Width != c.w || f.Height != c.h {
		return fmt.Errorf("field %dx%d does not fit canvas %dx%d", f.Width, f.Height, c.w, c.h)
	}
	data, pitch, err := c.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("lock texture: %w", err)
	}
	palette.PutRGBA8888(data, pitch, f)
	c.texture.Unlock()
	return nil
}

func (c *canvas) draw() error {
	return c.renderer.Copy(c.texture, nil, nil)
}
