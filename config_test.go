package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/snapshot"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

func TestParseFlags_Defaults(t *testing.T) {
	o, err := parseFlags("mandel", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if o.nav != navigator.DefaultConfig() {
		t.Errorf("defaults = %+v, want %+v", o.nav, navigator.DefaultConfig())
	}
	if o.out != "" || o.serve != "" || o.connect != "" || o.verbose {
		t.Errorf("unexpected mode flags: %+v", o)
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags("mandel", []string{
		"-width", "320", "-height", "200", "-max-iter", "64",
		"-zoom", "0.5", "-pan", "0.25",
		"-region", "-0.8, -0.7, 0.05, 0.15",
		"-out", "frame.bmp", "-format", "png",
		"-origins", "localhost:*,example.com",
		"-v",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	want := viewport.Viewport{MinRe: -0.8, MaxRe: -0.7, MinIm: 0.05, MaxIm: 0.15}
	if o.nav.Width != 320 || o.nav.Height != 200 || o.nav.MaxIter != 64 {
		t.Errorf("grid = %dx%d/%d", o.nav.Width, o.nav.Height, o.nav.MaxIter)
	}
	if o.nav.ZoomFactor != 0.5 || o.nav.PanStep != 0.25 {
		t.Errorf("zoom %v pan %v", o.nav.ZoomFactor, o.nav.PanStep)
	}
	if o.nav.Region != want {
		t.Errorf("region = %v, want %v", o.nav.Region, want)
	}
	if o.out != "frame.bmp" || o.format != snapshot.PNG || !o.verbose {
		t.Errorf("out %q format %q verbose %v", o.out, o.format, o.verbose)
	}
	if len(o.origins) != 2 || o.origins[1] != "example.com" {
		t.Errorf("origins = %v", o.origins)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad region count", []string{"-region", "1,2,3"}, nil},
		{"bad region number", []string{"-region", "a,1,0,1"}, nil},
		{"empty region", []string{"-region", "1,1,0,1"}, viewport.ErrInvalidRegion},
		{"bad format", []string{"-format", "gif"}, snapshot.ErrUnknownFormat},
		{"bad grid", []string{"-width", "0"}, navigator.ErrInvalidGrid},
		{"bad zoom", []string{"-zoom", "1.5"}, nil},
		{"exclusive modes", []string{"-serve", ":8080", "-connect", "ws://x/ws"}, nil},
		{"help", []string{"-h"}, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags("mandel", tt.args, io.Discard)
			if err == nil {
				t.Fatal("parseFlags() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("parseFlags() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommand_Keys(t *testing.T) {
	tests := []struct {
		key  sdl.Keycode
		want navigator.Command
	}{
		{sdl.K_LEFT, navigator.Pan{Direction: viewport.Left}},
		{sdl.K_RIGHT, navigator.Pan{Direction: viewport.Right}},
		{sdl.K_UP, navigator.Pan{Direction: viewport.Up}},
		{sdl.K_DOWN, navigator.Pan{Direction: viewport.Down}},
		{sdl.K_a, nil},
	}

	for _, tt := range tests {
		e := &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: tt.key}}
		if got := command(e); got != tt.want {
			t.Errorf("command(key %v) = %v, want %v", tt.key, got, tt.want)
		}
	}

	up := &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_LEFT}}
	if got := command(up); got != nil {
		t.Errorf("command(key up) = %v, want nil", got)
	}
	if got := command(&sdl.QuitEvent{}); got != nil {
		t.Errorf("command(quit) = %v, want nil", got)
	}
}
