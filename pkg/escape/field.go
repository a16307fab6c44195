package escape

import (
	"fmt"
	"slices"
)

// Field is a row-major grid of escape-time counts. A count equal to MaxIter
// means the point did not escape.
type Field struct {
	Width   int
	Height  int
	MaxIter int
	Counts  []uint32
}

func NewField(w, h, maxIter int) *Field {
	return &Field{
		Width:   w,
		Height:  h,
		MaxIter: maxIter,
		Counts:  make([]uint32, w*h),
	}
}

func (f *Field) At(x, y int) int {
	return int(f.Counts[y*f.Width+x])
}

// Row aliases the counts of row y.
func (f *Field) Row(y int) []uint32 {
	return f.Counts[y*f.Width : (y+1)*f.Width]
}

func (f *Field) Equal(other *Field) bool {
	return f.Width == other.Width &&
		f.Height == other.Height &&
		f.MaxIter == other.MaxIter &&
		slices.Equal(f.Counts, other.Counts)
}

// Inside counts the points that did not escape.
func (f *Field) Inside() int {
	n := 0
	limit := uint32(f.MaxIter)
	for _, c := range f.Counts {
		if c == limit {
			n++
		}
	}
	return n
}

func (f *Field) String() string {
	return fmt.Sprintf("%dx%d field (max %d)", f.Width, f.Height, f.MaxIter)
}
