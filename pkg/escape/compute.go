// Package escape computes Mandelbrot escape-time counts over a pixel grid,
// iterating Lanes pixels of a row together with per-lane masking.
package escape

import (
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

// Compute returns a fresh w x h field for v.
func Compute(v viewport.Viewport, w, h, maxIter int) *Field {
	f := NewField(w, h, maxIter)
	ComputeInto(f, v)
	return f
}

// ComputeInto overwrites every count of dst using dst's dimensions.
func ComputeInto(dst *Field, v viewport.Viewport) {
	reStep := v.ReSpan() / float64(dst.Width)
	imStep := v.ImSpan() / float64(dst.Height)

	for y := 0; y < dst.Height; y++ {
		computeRow(dst.Row(y), v.MinRe, reStep, v.MinIm+float64(float64(y)*imStep), dst.MaxIter)
	}
}

func computeRow(row []uint32, minRe, reStep, im float64, maxIter int) {
	cim := SplatF64(im)
	for x := 0; x < len(row); x += Lanes {
		var cre F64x4
		for i := range cre {
			cre[i] = minRe + float64(float64(x+i)*reStep)
		}

		iter := IterateGroup(cre, cim, maxIter)

		// the last group of a row may hang past the edge
		for i := 0; i < Lanes && x+i < len(row); i++ {
			row[x+i] = iter[i]
		}
	}
}
