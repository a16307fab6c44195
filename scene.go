package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/logging"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

type scene struct {
	window *sdl.Window
	canvas *canvas
	nav    *navigator.Navigator
}

func newScene(w *sdl.Window, r *sdl.Renderer, nav *navigator.Navigator) (*scene, error) {
	cfg := nav.Config()
	c, err := newCanvas(r, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return &scene{window: w, canvas: c, nav: nav}, nil
}

func (s *scene) close() {
	s.canvas.close()
}

// command decodes an input event into a navigation command, nil if the event
// does not navigate.
func command(e sdl.Event) navigator.Command {
	switch t := e.(type) {
	case *sdl.MouseWheelEvent:
		if t.Y == 0 {
			return nil
		}
		x, y, _ := sdl.GetMouseState()
		return navigator.Zoom{CursorX: int(x), CursorY: int(y), In: t.Y > 0}
	case *sdl.KeyboardEvent:
		if t.Type != sdl.KEYDOWN {
			return nil
		}
		switch t.Keysym.Sym {
		case sdl.K_LEFT:
			return navigator.Pan{Direction: viewport.Left}
		case sdl.K_RIGHT:
			return navigator.Pan{Direction: viewport.Right}
		case sdl.K_UP:
			return navigator.Pan{Direction: viewport.Up}
		case sdl.K_DOWN:
			return navigator.Pan{Direction: viewport.Down}
		}
	}
	return nil
}

func (s *scene) handle(e sdl.Event) {
	if cmd := command(e); cmd != nil {
		s.nav.Apply(cmd)
	}
}

// draw recomputes if the view changed, then blits the texture.
func (s *scene) draw() error {
	if f, ok := s.nav.Refresh(); ok {
		if err := s.canvas.upload(f); err != nil {
			return err
		}
		s.window.SetTitle(fmt.Sprintf("Mandelbrot %s", s.nav.Viewport()))
		logging.Logger().Debug("frame uploaded", "inside", f.Inside())
	}
	return s.canvas.draw()
}
