package navigator

import (
	"fmt"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

// Command is a navigation request decoded by an input layer.
type Command interface {
	apply(n *Navigator) bool
	fmt.Stringer
}

// Zoom scales the region about the pixel under the cursor.
type Zoom struct {
	CursorX, CursorY int
	In               bool
}

func (z Zoom) apply(n *Navigator) bool {
	return n.view.Zoom(z.CursorX, z.CursorY, z.In, n.cfg.ZoomFactor, n.cfg.Width, n.cfg.Height, n.cfg.Limits)
}

func (z Zoom) String() string {
	dir := "out"
	if z.In {
		dir = "in"
	}
	return fmt.Sprintf("zoom %s at (%d, %d)", dir, z.CursorX, z.CursorY)
}

// Pan moves the region by one step.
type Pan struct {
	Direction viewport.Direction
}

func (p Pan) apply(n *Navigator) bool {
	n.view.Pan(p.Direction, n.cfg.PanStep)
	return true
}

func (p Pan) String() string {
	return "pan " + p.Direction.String()
}
