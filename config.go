package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/snapshot"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

type options struct {
	nav     navigator.Config
	out     string
	format  snapshot.Format
	serve   string
	connect string
	origins []string
	verbose bool
}

func parseFlags(name string, args []string, stderr io.Writer) (options, error) {
	o := options{nav: navigator.DefaultConfig()}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.nav.Width, "width", o.nav.Width, "grid width in pixels")
	fs.IntVar(&o.nav.Height, "height", o.nav.Height, "grid height in pixels")
	fs.IntVar(&o.nav.MaxIter, "max-iter", o.nav.MaxIter, "iteration cap")
	fs.Float64Var(&o.nav.ZoomFactor, "zoom", o.nav.ZoomFactor, "zoom-in factor, in (0, 1)")
	fs.Float64Var(&o.nav.PanStep, "pan", o.nav.PanStep, "pan step as a fraction of the span")
	fs.Float64Var(&o.nav.Limits.MinSpan, "min-span", o.nav.Limits.MinSpan, "smallest span a zoom may produce, relative to the largest bound magnitude")
	fs.Float64Var(&o.nav.Limits.MaxSpan, "max-span", o.nav.Limits.MaxSpan, "largest span a zoom may produce")
	region := fs.String("region", "", "initial region as minRe,maxRe,minIm,maxIm")
	fs.StringVar(&o.out, "out", "", "render once to this png or bmp file and exit")
	format := fs.String("format", "", "snapshot format (png, bmp), default from -out extension")
	fs.StringVar(&o.serve, "serve", "", "serve the remote viewer on this address, e.g. :8080")
	fs.StringVar(&o.connect, "connect", "", "fetch one frame from a remote viewer, e.g. ws://localhost:8080/ws")
	origins := fs.String("origins", "", "comma separated origin patterns allowed to connect")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *region != "" {
		v, err := parseRegion(*region)
		if err != nil {
			return options{}, err
		}
		o.nav.Region = v
	}
	if *format != "" {
		f, err := snapshot.ParseFormat(*format)
		if err != nil {
			return options{}, err
		}
		o.format = f
	}
	if *origins != "" {
		o.origins = strings.Split(*origins, ",")
	}
	if o.serve != "" && o.connect != "" {
		return options{}, fmt.Errorf("-serve and -connect are exclusive")
	}
	if err := o.nav.Validate(); err != nil {
		return options{}, err
	}
	return o, nil
}

func parseRegion(s string) (viewport.Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return viewport.Viewport{}, fmt.Errorf("region %q: want 4 comma separated bounds", s)
	}
	var b [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return viewport.Viewport{}, fmt.Errorf("region %q: %w", s, err)
		}
		b[i] = f
	}
	return viewport.New(b[0], b[1], b[2], b[3])
}
