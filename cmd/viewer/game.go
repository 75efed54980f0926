package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/zoom"
)

type frame struct {
	rgba  []byte
	view  mandel.Viewport
	took  time.Duration
	depth int
}

// game implements ebiten.Game. Frames are rendered in the background, at most one
// at a time. Clicks zoom into the frame on screen; a click made while that frame is
// already outdated is dropped.
type game struct {
	ctrl *zoom.Controller

	offscreen *ebiten.Image
	shown     frame

	dirty   bool // the controller changed since the last render started
	pending int  // renders started whose frame is not shown yet
	renders errgroup.Group
	frames  chan frame
}

func newGame(ctrl *zoom.Controller) *game {
	b := ctrl.Bounds()
	g := &game{
		ctrl:      ctrl,
		offscreen: ebiten.NewImage(b.W, b.H),
		dirty:     true,
		frames:    make(chan frame, 1),
	}
	g.renders.SetLimit(1)
	return g
}

func (g *game) Update() error {
	select {
	case f := <-g.frames:
		g.offscreen.WritePixels(f.rgba)
		g.shown = f
		g.pending--
	default:
	}

	in := pollInput()

	switch {
	case in.Quit:
		return ebiten.Termination
	case in.Reset:
		g.ctrl.Reset()
		g.dirty = true
	case in.Landmark != "":
		r, err := mandel.LookupRegion(in.Landmark)
		if err != nil {
			return fmt.Errorf("landmark %q: %w", in.Landmark, err)
		}
		g.ctrl.Jump(r.Viewport())
		g.dirty = true
	case in.Click:
		if _, ok := g.ctrl.CompareAndRecenter(g.shown.view, float64(in.MouseX), float64(in.MouseY)); ok {
			g.dirty = true
		}
	}

	if g.dirty && g.renders.TryGo(g.renderFrame) {
		g.dirty = false
		g.pending++
	}
	return nil
}

func (g *game) renderFrame() error {
	start := time.Now()
	rgb, v, depth := g.ctrl.Frame(mandel.RGB)
	f := frame{
		rgba:  rgbToRGBA(rgb),
		view:  v,
		took:  time.Since(start),
		depth: depth,
	}
	log.Printf("rendered %s in %s", v, f.took)
	g.frames <- f
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.offscreen, nil)

	status := ""
	if g.pending > 0 || g.dirty {
		status = " (rendering)"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"UL %s\nLR %s\nzoom depth %d, %s%s\nclick: zoom  R: reset  1-8: landmarks  Esc: quit",
		mandel.FormatComplex(g.shown.view.UpperLeft),
		mandel.FormatComplex(g.shown.view.LowerRight),
		g.shown.depth, g.shown.took.Round(time.Millisecond), status,
	))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.ctrl.Bounds()
	return b.W, b.H
}

// close waits for a running render. The frame channel is drained so that render can finish.
func (g *game) close() {
	go func() {
		for range g.frames {
		}
	}()
	_ = g.renders.Wait()
	close(g.frames)
}

// rgbToRGBA converts packed RGB to the opaque RGBA layout ebiten.Image.WritePixels expects.
func rgbToRGBA(rgb []byte) []byte {
	rgba := make([]byte, len(rgb)/3*4)
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		rgba[j] = rgb[i]
		rgba[j+1] = rgb[i+1]
		rgba[j+2] = rgb[i+2]
		rgba[j+3] = 0xff
	}
	return rgba
}
