package mandel

import (
	"errors"
	"fmt"
	"image"
)

var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the rectangle of the complex plane being rendered.
// Pixel row 0 maps to UpperLeft's imaginary part, so imag(UpperLeft) > imag(LowerRight).
type Viewport struct {
	UpperLeft  complex128
	LowerRight complex128
}

// Valid reports whether the corners form a non-degenerate, correctly oriented rectangle.
func (v Viewport) Valid() bool {
	return real(v.UpperLeft) < real(v.LowerRight) && imag(v.UpperLeft) > imag(v.LowerRight)
}

// Check returns ErrInvalidViewport (wrapped with the corners) if v is not Valid.
func (v Viewport) Check() error {
	if !v.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidViewport, v)
	}
	return nil
}

func (v Viewport) Width() float64 { return real(v.LowerRight) - real(v.UpperLeft) }

func (v Viewport) Height() float64 { return imag(v.UpperLeft) - imag(v.LowerRight) }

func (v Viewport) Center() complex128 { return scale(v.UpperLeft+v.LowerRight, 2) }

func (v Viewport) String() string {
	return FormatComplex(v.UpperLeft) + " " + FormatComplex(v.LowerRight)
}

// PixelToPoint maps pixel px of a grid of size b onto the plane point it covers.
// Pixels outside of the grid are extrapolated along the same affine map.
func PixelToPoint(b Bounds, px image.Point, v Viewport) complex128 {
	width, height := v.Width(), v.Height()
	return complex(
		real(v.UpperLeft)+(float64(px.X)/float64(b.W))*width,
		imag(v.UpperLeft)-(float64(px.Y)/float64(b.H))*height,
	)
}

// Recenter moves the viewport so that its center lands on the plane point under
// pixel (x, y) and then pulls both corners 1/8 of the center-to-corner distance inwards.
//
// The arithmetic order is significant: zoom sequences replayed from recorded clicks
// must land on bit-identical viewports.
func (v Viewport) Recenter(x, y float64, b Bounds) Viewport {
	px := x / float64(b.W)
	py := y / float64(b.H)

	ul, lr := v.UpperLeft, v.LowerRight

	c := scale(ul+lr, 2)
	m := complex(
		(1-px)*real(ul)+px*real(lr),
		(1-py)*imag(ul)+py*imag(lr),
	)

	ul += m - c
	lr += m - c

	padding := scale(c-ul, 8)
	ul += padding
	lr -= padding

	return Viewport{UpperLeft: ul, LowerRight: lr}
}

// scale divides both components of z by k.
// complex128 division by complex(k, 0) is not guaranteed to be exact component-wise.
func scale(z complex128, k float64) complex128 {
	return complex(real(z)/k, imag(z)/k)
}
