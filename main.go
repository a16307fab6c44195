package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/logging"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/remote"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/snapshot"
)

const defaultRemoteOut = "mandel.png"

func init() {
	// SDL video calls must stay on the thread that initialised it
	runtime.LockOSThread()
}

func sdlInit(windowTitle string, w, h int) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h), sdl.WINDOW_OPENGL,
	)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func main() {
	o, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(o); err != nil {
		logging.Logger().Error("run", "err", err)
		os.Exit(1)
	}
}

func run(o options) error {
	switch {
	case o.connect != "":
		return fetchRemote(o)
	case o.serve != "":
		return serve(o)
	case o.out != "":
		return renderOnce(o)
	}
	return view(o)
}

func renderOnce(o options) error {
	nav, err := navigator.New(o.nav)
	if err != nil {
		return err
	}
	start := time.Now()
	f, _ := nav.Refresh()
	logging.Logger().Info("rendered", "region", nav.Viewport().String(), "elapsed", time.Since(start))

	if err := snapshot.WriteFile(o.out, f, o.format); err != nil {
		return err
	}
	logging.Logger().Info("snapshot saved", "file", o.out)
	return nil
}

func serve(o options) error {
	s, err := remote.NewServer(o.nav, remote.WithOriginPatterns(o.origins...))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.ListenAndServe(ctx, o.serve)
}

// fetchRemote saves the first frame a remote viewer sends.
func fetchRemote(o options) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logging.Logger().Info("connecting", "url", o.connect)
	cl, err := remote.Dial(ctx, o.connect)
	if err != nil {
		return err
	}
	defer cl.Close()

	fr, err := cl.ReadFrame(ctx)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}

	out := o.out
	if out == "" {
		out = defaultRemoteOut
	}
	if err := snapshot.WriteFile(out, fr.Field, o.format); err != nil {
		return err
	}
	logging.Logger().Info("remote frame saved", "file", out, "region", fr.Region.String())
	return nil
}

func view(o options) error {
	nav, err := navigator.New(o.nav)
	if err != nil {
		return err
	}

	// start SDL
	window, renderer, err := sdlInit("Mandelbrot", o.nav.Width, o.nav.Height)
	if err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdlClose(window, renderer)

	s, err := newScene(window, renderer, nav)
	if err != nil {
		return err
	}
	defer s.close()

	// start loop
	for {
		renderer.Clear()
		if err := s.draw(); err != nil {
			return err
		}
		renderer.Present()

		// WaitEvent must be on the same thread that did INIT_VIDEO
		e := sdl.WaitEvent()

		// WaitEvent returns nil on some error
		if e == nil {
			return fmt.Errorf("wait event: %v", sdl.GetError())
		}

		switch t := e.(type) {
		case *sdl.QuitEvent:
			logging.Logger().Info("quit event")
			return nil
		case *sdl.KeyboardEvent:
			if t.Keysym.Sym == sdl.K_ESCAPE {
				logging.Logger().Info("esc event")
				return nil
			}
		}
		s.handle(e)
	}
}
