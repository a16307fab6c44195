package remote

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

// Wire format
//
// client -> server, text:   {"op":"zoom","x":10,"y":20,"in":true}
//                           {"op":"pan","dir":"left"}
// server -> client, text:   frameHeader as JSON
// server -> client, binary: width*height little-endian uint32 counts, row-major

const (
	opZoom = "zoom"
	opPan  = "pan"

	typeFrame = "frame"
)

var ErrBadMessage = errors.New("remote: bad message")

type commandMessage struct {
	Op  string `json:"op"`
	X   int    `json:"x,omitempty"`
	Y   int    `json:"y,omitempty"`
	In  bool   `json:"in,omitempty"`
	Dir string `json:"dir,omitempty"`
}

func (m commandMessage) command() (navigator.Command, error) {
	switch m.Op {
	case opZoom:
		return navigator.Zoom{CursorX: m.X, CursorY: m.Y, In: m.In}, nil
	case opPan:
		d, err := viewport.ParseDirection(m.Dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		return navigator.Pan{Direction: d}, nil
	}
	return nil, fmt.Errorf("%w: unknown op %q", ErrBadMessage, m.Op)
}

func messageFor(cmd navigator.Command) (commandMessage, error) {
	switch c := cmd.(type) {
	case navigator.Zoom:
		return commandMessage{Op: opZoom, X: c.CursorX, Y: c.CursorY, In: c.In}, nil
	case navigator.Pan:
		return commandMessage{Op: opPan, Dir: c.Direction.String()}, nil
	}
	return commandMessage{}, fmt.Errorf("%w: unsupported command %T", ErrBadMessage, cmd)
}

type regionMessage struct {
	MinRe float64 `json:"minRe"`
	MaxRe float64 `json:"maxRe"`
	MinIm float64 `json:"minIm"`
	MaxIm float64 `json:"maxIm"`
}

type frameHeader struct {
	Type    string        `json:"type"`
	Seq     uint64        `json:"seq"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	MaxIter int           `json:"maxIter"`
	Region  regionMessage `json:"region"`
}

// Frame is one field as received by a client.
type Frame struct {
	Seq    uint64
	Region viewport.Viewport
	Field  *escape.Field
}

func headerFor(seq uint64, v viewport.Viewport, f *escape.Field) frameHeader {
	return frameHeader{
		Type:    typeFrame,
		Seq:     seq,
		Width:   f.Width,
		Height:  f.Height,
		MaxIter: f.MaxIter,
		Region:  regionMessage{MinRe: v.MinRe, MaxRe: v.MaxRe, MinIm: v.MinIm, MaxIm: v.MaxIm},
	}
}

func appendCounts(dst []byte, f *escape.Field) []byte {
	for _, c := range f.Counts {
		dst = binary.LittleEndian.AppendUint32(dst, c)
	}
	return dst
}

func decodeFrame(h frameHeader, payload []byte) (*Frame, error) {
	if h.Type != typeFrame || h.Width <= 0 || h.Height <= 0 || h.MaxIter <= 0 {
		return nil, fmt.Errorf("%w: header %+v", ErrBadMessage, h)
	}
	// 4*w*h must not overflow
	if h.Width > math.MaxInt32/4/h.Height {
		return nil, fmt.Errorf("%w: %dx%d grid too large", ErrBadMessage, h.Width, h.Height)
	}
	if len(payload) != 4*h.Width*h.Height {
		return nil, fmt.Errorf("%w: %d payload bytes for %dx%d", ErrBadMessage, len(payload), h.Width, h.Height)
	}

	f := escape.NewField(h.Width, h.Height, h.MaxIter)
	for i := range f.Counts {
		f.Counts[i] = binary.LittleEndian.Uint32(payload[4*i:])
	}
	return &Frame{
		Seq: h.Seq,
		Region: viewport.Viewport{
			MinRe: h.Region.MinRe,
			MaxRe: h.Region.MaxRe,
			MinIm: h.Region.MinIm,
			MaxIm: h.Region.MaxIm,
		},
		Field: f,
	}, nil
}
