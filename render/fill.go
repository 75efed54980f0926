// Package render fills pixel buffers with the grayscale escape-time image of a viewport.
//
// The grid is cut into tiles which a pool of worker goroutines renders independently.
// Every pixel depends only on the grid size, the viewport and its own coordinates, and
// every worker writes only the bytes of its own tiles, so the output is byte-identical
// for any number of workers or any tile size.
package render

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelzoom"
)

const (
	DefaultTileW = 64
	DefaultTileH = 64
)

type config struct {
	workers      int
	tileW, tileH int
	onTileRender func(tile image.Rectangle)
	onProgress   func(done float32)
}

type Option func(*config)

// WithWorkers sets the number of worker goroutines. n < 1 means runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithTileSize sets the size of a unit of work. Non-positive sizes keep the default.
func WithTileSize(w, h int) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.tileW, c.tileH = w, h
		}
	}
}

// WithOnTileRender registers a hook called by a worker right before it renders a tile.
// The hook may be called from several goroutines at once.
func WithOnTileRender(fn func(tile image.Rectangle)) Option {
	return func(c *config) { c.onTileRender = fn }
}

// WithProgress registers a hook receiving the finished fraction of the image after every tile.
// The hook may be called from several goroutines at once; values are not guaranteed
// to arrive in increasing order.
func WithProgress(fn func(done float32)) Option {
	return func(c *config) { c.onProgress = fn }
}

func newConfig(opts []Option) config {
	c := config{tileW: DefaultTileW, tileH: DefaultTileH}
	for _, o := range opts {
		o(&c)
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Fill renders viewport v into pix, a row-major buffer of grid b in format f.
//
// Fill panics if b is not a valid grid or if len(pix) is not exactly f.BufferLen(b).
// Both are programming errors of the caller; nothing is written in that case.
// Fill returns once every pixel has been written.
func Fill(pix []byte, b mandel.Bounds, f mandel.PixelFormat, v mandel.Viewport, opts ...Option) {
	if !b.Valid() {
		panic(fmt.Sprintf("render: invalid bounds %dx%d", b.W, b.H))
	}
	if want := f.BufferLen(b); len(pix) != want {
		panic(fmt.Sprintf("render: buffer length %d does not match %s image of %s (want %d)", len(pix), f, b, want))
	}

	c := newConfig(opts)
	dst := tileTarget{pix: pix, stride: b.W * f.Channels(), channels: f.Channels()}
	// fill never fails, so every tile is written once run returns
	_ = c.run(context.Background(), b, v, f.String(), func(tile image.Rectangle) error {
		dst.fill(tile, b, v)
		return nil
	})
}

// run calls work for every tile of grid b on c.workers goroutines.
// It stops handing out tiles once work fails or ctx is done.
func (c config) run(ctx context.Context, b mandel.Bounds, v mandel.Viewport, what string, work func(tile image.Rectangle) error) error {
	start := time.Now()
	ts := newTileScheduler(b.Rect(), c.tileW, c.tileH, c.onProgress)
	workers := min(c.workers, ts.len())

	g, ctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				tile, found := ts.popTile()
				if !found {
					return nil
				}
				if c.onTileRender != nil {
					c.onTileRender(tile)
				}
				if err := work(tile); err != nil {
					return err
				}
				ts.tileFinished(tile)
			}
		})
	}
	err := g.Wait()

	mandel.Logger().Debug("render finished",
		"bounds", b.String(),
		"target", what,
		"viewport", v.String(),
		"tiles", ts.len(),
		"workers", workers,
		"took", time.Since(start),
		"err", err,
	)
	return err
}

// FillAuto is Fill with the pixel format inferred from the buffer length:
// W*H bytes is Gray, 3*W*H bytes is RGB. Any other length panics.
func FillAuto(pix []byte, b mandel.Bounds, v mandel.Viewport, opts ...Option) {
	f, ok := mandel.FormatForLen(len(pix), b)
	if !ok {
		panic(fmt.Sprintf("render: buffer length %d is neither %d nor %d", len(pix), mandel.Gray.BufferLen(b), mandel.RGB.BufferLen(b)))
	}
	Fill(pix, b, f, v, opts...)
}

// Image renders v into a new grayscale image of grid b.
func Image(b mandel.Bounds, v mandel.Viewport, opts ...Option) *image.Gray {
	img := image.NewGray(b.Rect())
	Fill(img.Pix, b, mandel.Gray, v, opts...)
	return img
}

// tileTarget is a pixel buffer whose first byte holds pixel origin.
type tileTarget struct {
	pix      []byte
	stride   int
	channels int
	origin   image.Point
}

// fill writes the intensities of the pixels in tile. tile coordinates are global,
// i.e. relative to the full grid b.
func (t tileTarget) fill(tile image.Rectangle, b mandel.Bounds, v mandel.Viewport) {
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		i := (y-t.origin.Y)*t.stride + (tile.Min.X-t.origin.X)*t.channels
		for x := tile.Min.X; x < tile.Max.X; x++ {
			c := mandel.PixelToPoint(b, image.Pt(x, y), v)
			gray := mandel.Intensity(c)
			for k := range t.channels {
				t.pix[i+k] = gray
			}
			i += t.channels
		}
	}
}
