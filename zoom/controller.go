// Package zoom owns the viewport of an interactive session.
//
// A Controller is the only place the viewport is mutated. Renders take a Snapshot
// first and work on that copy, so a click arriving mid-render affects the next frame
// only.
package zoom

import (
	"sync"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
)

type Controller struct {
	bounds mandel.Bounds
	home   mandel.Viewport
	opts   []render.Option

	m     sync.RWMutex
	view  mandel.Viewport
	depth int
}

// NewController creates a controller for a grid of size b starting at home.
// opts are passed to every render the controller performs.
func NewController(b mandel.Bounds, home mandel.Viewport, opts ...render.Option) *Controller {
	return &Controller{
		bounds: b,
		home:   home,
		opts:   opts,
		view:   home,
	}
}

func (c *Controller) Bounds() mandel.Bounds { return c.bounds }

// Snapshot returns the current viewport.
func (c *Controller) Snapshot() mandel.Viewport {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.view
}

// Depth returns the number of clicks since the last Reset or Jump.
func (c *Controller) Depth() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.depth
}

// State returns the current viewport together with its depth.
func (c *Controller) State() (mandel.Viewport, int) {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.view, c.depth
}

// Recenter zooms towards the pixel (x, y) of the controller's grid and returns the new viewport.
func (c *Controller) Recenter(x, y float64) mandel.Viewport {
	c.m.Lock()
	c.view = c.view.Recenter(x, y, c.bounds)
	c.depth++
	v, depth := c.view, c.depth
	c.m.Unlock()

	mandel.Logger().Info("viewport recentered", "x", x, "y", y, "viewport", v.String(), "depth", depth)
	return v
}

// CompareAndRecenter zooms towards the pixel (x, y) of old, the viewport the click was made on.
// If the controller has moved on from old in the meantime, the click is dropped and ok is false.
func (c *Controller) CompareAndRecenter(old mandel.Viewport, x, y float64) (v mandel.Viewport, ok bool) {
	c.m.Lock()
	if c.view != old {
		v = c.view
		c.m.Unlock()
		mandel.Logger().Debug("stale click dropped", "x", x, "y", y, "clicked", old.String(), "viewport", v.String())
		return v, false
	}
	c.view = old.Recenter(x, y, c.bounds)
	c.depth++
	v, depth := c.view, c.depth
	c.m.Unlock()

	mandel.Logger().Info("viewport recentered", "x", x, "y", y, "viewport", v.String(), "depth", depth)
	return v, true
}

// Reset returns to the home viewport.
func (c *Controller) Reset() mandel.Viewport {
	return c.Jump(c.home)
}

// Jump replaces the viewport, e.g. with a landmark.
func (c *Controller) Jump(v mandel.Viewport) mandel.Viewport {
	c.m.Lock()
	c.view = v
	c.depth = 0
	c.m.Unlock()

	mandel.Logger().Info("viewport replaced", "viewport", v.String())
	return v
}

// Frame renders the current viewport into a new buffer of format f.
// It returns the viewport the frame was rendered for and that viewport's depth.
func (c *Controller) Frame(f mandel.PixelFormat) (pix []byte, v mandel.Viewport, depth int) {
	v, depth = c.State()
	pix = make([]byte, f.BufferLen(c.bounds))
	render.Fill(pix, c.bounds, f, v, c.opts...)
	return pix, v, depth
}
