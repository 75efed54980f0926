// Package imgfile writes rendered grayscale buffers as image files.
package imgfile

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	mandel "github.com/marben/mandelzoom"
)

type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

var ErrUnknownFormat = errors.New("unknown image format")

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ParseFormat accepts a format name or a file extension with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFor picks the format by the extension of path.
func FormatFor(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w as 8-bit single channel grayscale.
func Encode(w io.Writer, img *image.Gray, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Gray wraps a Gray buffer of grid b as an image without copying.
// It panics if len(pix) is not b.W*b.H.
func Gray(pix []byte, b mandel.Bounds) *image.Gray {
	if len(pix) != mandel.Gray.BufferLen(b) {
		panic(fmt.Sprintf("imgfile: buffer length %d does not match %s", len(pix), b))
	}
	return &image.Gray{Pix: pix, Stride: b.W, Rect: b.Rect()}
}

// Save writes the Gray buffer pix of grid b to path, in the format matching its extension.
func Save(path string, pix []byte, b mandel.Bounds) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	img := Gray(pix, b)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	return Encode(file, img, f)
}
