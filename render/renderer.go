package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	mandel "github.com/marben/mandelzoom"
)

// RendererImpl renders single tiles on the calling goroutine.
type RendererImpl struct {
	OnTileRender func(tile image.Rectangle)
}

// RenderTile renders the tile of an imgW × imgH image of viewport v.
// The returned image uses global coordinates (tile.Min .. tile.Max).
func (imp RendererImpl) RenderTile(v mandel.Viewport, tile image.Rectangle, imgW, imgH int) (*image.Gray, error) {
	if imp.OnTileRender != nil {
		imp.OnTileRender(tile)
	}

	b := mandel.Bounds{W: imgW, H: imgH}
	tile = tile.Intersect(b.Rect())

	img := image.NewGray(tile)
	t := tileTarget{pix: img.Pix, stride: img.Stride, channels: 1, origin: tile.Min}
	t.fill(tile, b, v)

	return img, nil
}

var _ mandel.Renderer = RendererImpl{}

// Tiles renders viewport v into a new image of grid b, handing every tile to r
// on the worker pool configured by opts. It returns the first error of r, or ctx.Err()
// if ctx is done before all tiles are rendered.
//
// Tiles panics if b is not a valid grid.
func Tiles(ctx context.Context, r mandel.Renderer, b mandel.Bounds, v mandel.Viewport, opts ...Option) (*image.Gray, error) {
	if !b.Valid() {
		panic(fmt.Sprintf("render: invalid bounds %dx%d", b.W, b.H))
	}

	c := newConfig(opts)
	img := image.NewGray(b.Rect())
	err := c.run(ctx, b, v, fmt.Sprintf("%T", r), func(tile image.Rectangle) error {
		t, err := r.RenderTile(v, tile, b.W, b.H)
		if err != nil {
			return fmt.Errorf("tile %s: %w", tile, err)
		}
		if t.Rect != tile {
			return fmt.Errorf("tile %s: renderer returned %s", tile, t.Rect)
		}
		// tiles are disjoint, so workers never draw the same bytes
		draw.Draw(img, tile, t, tile.Min, draw.Src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
