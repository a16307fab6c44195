// Package snapshot writes a colored escape-time field to an image file.
package snapshot

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/palette"
)

type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

var ErrUnknownFormat = errors.New("snapshot: unknown format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ParseFormat(ext)
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG:
		return PNG, nil
	case BMP:
		return BMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func Encode(w io.Writer, f *escape.Field, format Format) error {
	img := palette.Image(f)
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile encodes f into path. An empty format is taken from the extension.
func WriteFile(path string, f *escape.Field, format Format) (err error) {
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()

	if err := Encode(out, f, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
