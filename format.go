package mandel

import "fmt"

// PixelFormat is the memory layout of a rendered buffer.
type PixelFormat int

const (
	// Gray stores one intensity byte per pixel.
	Gray PixelFormat = iota
	// RGB stores the intensity three times per pixel, ready for RGB texture uploads.
	RGB
)

func (f PixelFormat) Channels() int {
	switch f {
	case Gray:
		return 1
	case RGB:
		return 3
	default:
		panic(fmt.Sprintf("unknown pixel format %d", int(f)))
	}
}

func (f PixelFormat) String() string {
	switch f {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// BufferLen is the exact number of bytes a buffer of format f needs for grid b.
func (f PixelFormat) BufferLen(b Bounds) int {
	return b.Pixels() * f.Channels()
}

// FormatForLen infers the pixel format from the length of a buffer for grid b.
// ok is false for any length other than W*H or 3*W*H.
func FormatForLen(n int, b Bounds) (f PixelFormat, ok bool) {
	switch n {
	case Gray.BufferLen(b):
		return Gray, true
	case RGB.BufferLen(b):
		return RGB, true
	default:
		return 0, false
	}
}
