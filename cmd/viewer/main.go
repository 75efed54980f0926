// viewer opens a window showing the Mandelbrot set. Clicking zooms towards the clicked point.
//
// Keys: R resets the view, 1-8 jump to landmarks, Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
	"github.com/marben/mandelzoom/zoom"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		size    = flag.String("size", "1000x1000", "window size in pixels, WxH")
		region  = flag.String("region", "home", "initial landmark")
		workers = flag.Int("workers", 0, "number of render goroutines (0 = GOMAXPROCS)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	b, ok := mandel.ParseBounds(*size)
	if !ok {
		return fmt.Errorf("invalid -size %q", *size)
	}
	home, err := mandel.LookupRegion(*region)
	if err != nil {
		return fmt.Errorf("-region %q: %w", *region, err)
	}

	ctrl := zoom.NewController(b, home.Viewport(), render.WithWorkers(*workers))
	g := newGame(ctrl)
	defer g.close()

	ebiten.SetWindowSize(b.W, b.H)
	ebiten.SetWindowTitle("Mandelbrot")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebiten.RunGame: %w", err)
	}
	return nil
}
