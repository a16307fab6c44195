// Package navigator couples the viewport to the escape engine.
//
// A Navigator is Idle until a command is accepted, which marks it dirty.
// Refresh then moves it to Recomputing, recomputes the whole field and
// returns to Idle. Everything happens on the caller's goroutine; a Navigator
// is not safe for concurrent use.
package navigator

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/logging"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultMaxIter = 1000
)

var ErrInvalidGrid = errors.New("navigator: invalid grid")

type State int

const (
	Idle State = iota
	Recomputing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recomputing:
		return "recomputing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Config struct {
	Width, Height int
	MaxIter       int
	ZoomFactor    float64
	PanStep       float64
	Limits        viewport.Limits
	Region        viewport.Viewport
}

func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		MaxIter:    DefaultMaxIter,
		ZoomFactor: viewport.DefaultZoomFactor,
		PanStep:    viewport.DefaultPanStep,
		Limits:     viewport.DefaultLimits(),
		Region:     viewport.Default(),
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, c.Width, c.Height)
	}
	if c.MaxIter <= 0 || uint64(c.MaxIter) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidGrid, c.MaxIter)
	}
	if !(c.ZoomFactor > 0 && c.ZoomFactor < 1) {
		return fmt.Errorf("navigator: zoom factor %v not in (0, 1)", c.ZoomFactor)
	}
	if !(c.PanStep > 0) {
		return fmt.Errorf("navigator: pan step %v not positive", c.PanStep)
	}
	if !(c.Limits.MinSpan > 0) || c.Limits.MaxSpan < c.Limits.MinSpan {
		return fmt.Errorf("navigator: bad span limits %+v", c.Limits)
	}
	if err := c.Region.Validate(); err != nil {
		return err
	}
	return nil
}

// RenderFunc produces a field for a region. The returned field must not be
// modified afterwards by the function.
type RenderFunc func(v viewport.Viewport, w, h, maxIter int) *escape.Field

type Option func(*Navigator)

// WithRenderFunc replaces the in-place recompute. Used to share fields
// between navigators.
func WithRenderFunc(fn RenderFunc) Option {
	return func(n *Navigator) {
		n.render = fn
	}
}

type Navigator struct {
	cfg    Config
	view   viewport.Viewport
	field  *escape.Field
	render RenderFunc
	state  State
	dirty  bool
}

// New starts dirty so the first Refresh produces the initial frame.
func New(cfg Config, opts ...Option) (*Navigator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &Navigator{
		cfg:   cfg,
		view:  cfg.Region,
		state: Idle,
		dirty: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *Navigator) Config() Config {
	return n.cfg
}

func (n *Navigator) Viewport() viewport.Viewport {
	return n.view
}

func (n *Navigator) State() State {
	return n.state
}

func (n *Navigator) Dirty() bool {
	return n.dirty
}

// Field is the last computed field, nil before the first Refresh. It stays
// valid until the next Refresh.
func (n *Navigator) Field() *escape.Field {
	return n.field
}

// Apply mutates the viewport. A rejected command (a zoom past the span
// limits) leaves the navigator untouched and reports false.
func (n *Navigator) Apply(cmd Command) bool {
	if !cmd.apply(n) {
		logging.Logger().Debug("command rejected", "cmd", cmd.String(), "region", n.view.String())
		return false
	}
	n.dirty = true
	logging.Logger().Debug("command applied", "cmd", cmd.String(), "region", n.view.String())
	return true
}

// Refresh recomputes the field if a command was accepted since the last
// call. It reports whether a new field was produced.
func (n *Navigator) Refresh() (*escape.Field, bool) {
	if !n.dirty {
		return n.field, false
	}

	n.state = Recomputing
	start := time.Now()
	if n.render != nil {
		n.field = n.render(n.view, n.cfg.Width, n.cfg.Height, n.cfg.MaxIter)
	} else {
		if n.field == nil {
			n.field = escape.NewField(n.cfg.Width, n.cfg.Height, n.cfg.MaxIter)
		}
		escape.ComputeInto(n.field, n.view)
	}
	n.dirty = false
	n.state = Idle

	logging.Logger().Debug("field recomputed",
		"region", n.view.String(),
		"elapsed", time.Since(start),
	)
	return n.field, true
}
