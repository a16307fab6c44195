// Package viewport holds the visible rectangle of the complex plane and the
// transforms applied to it by navigation input.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/types"
)

const (
	DefaultMinRe = -2.0
	DefaultMaxRe = 1.0
	DefaultMinIm = -1.5
	DefaultMaxIm = 1.5

	// DefaultZoomFactor scales both spans on a zoom-in step.
	// A zoom-out step scales by its reciprocal.
	DefaultZoomFactor = 0.7
	// DefaultPanStep is the fraction of the current span moved per pan step.
	DefaultPanStep = 0.1

	// DefaultMinSpan is relative to the largest bound magnitude (or 1 near the
	// origin). It keeps about five ulps between neighbouring pixels of an
	// 800 pixel wide grid wherever the region sits.
	DefaultMinSpan = 1e-12
	DefaultMaxSpan = 1e3
)

var ErrInvalidRegion = errors.New("viewport: invalid region")

// Direction of a pan step.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("viewport: unknown direction %q", s)
}

// Limits bounds the width and height a zoom may produce. MinSpan scales with
// the magnitude of the bounds; MaxSpan is absolute.
type Limits struct {
	MinSpan float64
	MaxSpan float64
}

func DefaultLimits() Limits {
	return Limits{MinSpan: DefaultMinSpan, MaxSpan: DefaultMaxSpan}
}

func (l Limits) allows(lo, hi float64) bool {
	span := hi - lo
	scale := math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	return span >= l.MinSpan*scale && span <= l.MaxSpan
}

// Viewport is the region [MinRe, MaxRe] x [MinIm, MaxIm]. Pixel row 0 maps to
// MinIm, so Up moves towards smaller imaginary values.
type Viewport struct {
	MinRe, MaxRe float64
	MinIm, MaxIm float64
}

func Default() Viewport {
	return Viewport{
		MinRe: DefaultMinRe,
		MaxRe: DefaultMaxRe,
		MinIm: DefaultMinIm,
		MaxIm: DefaultMaxIm,
	}
}

// New validates the bounds. Both spans must be finite and strictly positive.
func New(minRe, maxRe, minIm, maxIm float64) (Viewport, error) {
	v := Viewport{MinRe: minRe, MaxRe: maxRe, MinIm: minIm, MaxIm: maxIm}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

func (v Viewport) Validate() error {
	for _, b := range []float64{v.MinRe, v.MaxRe, v.MinIm, v.MaxIm} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: non-finite bound in %v", ErrInvalidRegion, v)
		}
	}
	if !(v.ReSpan() > 0) || !(v.ImSpan() > 0) {
		return fmt.Errorf("%w: empty span in %v", ErrInvalidRegion, v)
	}
	return nil
}

func (v Viewport) ReSpan() float64 {
	return v.MaxRe - v.MinRe
}

func (v Viewport) ImSpan() float64 {
	return v.MaxIm - v.MinIm
}

func (v Viewport) String() string {
	return fmt.Sprintf("Re[%g, %g] Im[%g, %g]", v.MinRe, v.MaxRe, v.MinIm, v.MaxIm)
}

// PixelToPlane maps pixel (px, py) of a w x h grid to the complex plane.
// Pixel (0, 0) maps to (MinRe, MinIm); fractional pixels are allowed.
func (v Viewport) PixelToPlane(px, py float64, w, h int) types.Pointf64 {
	return types.Pointf64{
		X: v.MinRe + v.ReSpan()*px/float64(w),
		Y: v.MinIm + v.ImSpan()*py/float64(h),
	}
}

// Zoom scales the region about the point under the cursor: by factor when
// zoomIn, by 1/factor otherwise. The cursor point keeps its pixel position.
// A zoom whose resulting spans fall outside lim leaves v untouched and
// reports false.
func (v *Viewport) Zoom(cursorX, cursorY int, zoomIn bool, factor float64, w, h int, lim Limits) bool {
	s := factor
	if !zoomIn {
		s = 1 / factor
	}

	anchor := v.PixelToPlane(float64(cursorX), float64(cursorY), w, h)
	next := Viewport{
		MinRe: anchor.X + (v.MinRe-anchor.X)*s,
		MaxRe: anchor.X + (v.MaxRe-anchor.X)*s,
		MinIm: anchor.Y + (v.MinIm-anchor.Y)*s,
		MaxIm: anchor.Y + (v.MaxIm-anchor.Y)*s,
	}
	// checked on the rounded result so an accepted region never dips below the floor
	if !lim.allows(next.MinRe, next.MaxRe) || !lim.allows(next.MinIm, next.MaxIm) {
		return false
	}
	*v = next
	return true
}

// Pan shifts one axis by step times its current span.
func (v *Viewport) Pan(d Direction, step float64) {
	reOffset := v.ReSpan() * step
	imOffset := v.ImSpan() * step

	switch d {
	case Left:
		v.MinRe -= reOffset
		v.MaxRe -= reOffset
	case Right:
		v.MinRe += reOffset
		v.MaxRe += reOffset
	case Up:
		v.MinIm -= imOffset
		v.MaxIm -= imOffset
	case Down:
		v.MinIm += imOffset
		v.MaxIm += imOffset
	}
}
