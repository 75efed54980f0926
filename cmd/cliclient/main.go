// cliclient is a CLI client for the Mandelbrot zoom server.
// It connects to the server, replays a list of clicks, and saves the final frame as an image file.
//
//	cliclient -click 400,300 -click 120,80 -o zoomed.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/imgfile"
)

type clicks []mandel.Command

func (c *clicks) String() string { return fmt.Sprint(len(*c), " clicks") }

func (c *clicks) Set(s string) error {
	x, y, ok := mandel.ParsePair[float64](s, ',')
	if !ok {
		return fmt.Errorf("error parsing click %q, want X,Y", s)
	}
	*c = append(*c, mandel.Command{Op: mandel.OpClick, X: x, Y: y})
	return nil
}

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	var (
		url     = flag.String("addr", "ws://localhost:8080/ws", "websocket url of the server")
		out     = flag.String("o", "mandel.png", "output file (.png, .bmp or .tiff)")
		region  = flag.String("region", "", "landmark to jump to before clicking")
		timeout = flag.Duration("timeout", time.Minute, "overall timeout")
		cmds    clicks
	)
	flag.Var(&cmds, "click", "pixel X,Y to zoom into, may be repeated")
	flag.Parse()

	if _, err := imgfile.FormatFor(*out); err != nil {
		return fmt.Errorf("-o %q: %w", *out, err)
	}
	if *region != "" {
		cmds = append(clicks{{Op: mandel.OpRegion, Region: *region}}, cmds...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Step 1: Connect to Mandelbrot server
	log.Printf("Connecting to Mandelbrot server on %s...", *url)
	zc, err := dial(ctx, *url)
	if err != nil {
		return err
	}
	defer zc.Close()

	// Step 2: The server pushes the first frame right away
	info, img, err := zc.ReadFrame(ctx)
	if err != nil {
		return err
	}
	log.Printf("Initial frame %dx%d: %s %s", info.Width, info.Height, info.UpperLeft, info.LowerRight)

	// Step 3: Replay commands
	for _, cmd := range cmds {
		info, img, err = zc.Send(ctx, cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Op, err)
		}
		log.Printf("%s -> depth %d: %s %s", cmd.Op, info.Depth, info.UpperLeft, info.LowerRight)
	}

	// Step 4: Save the last frame
	log.Printf("Saving frame to %q...", *out)
	if err := save(*out, img); err != nil {
		return err
	}
	log.Printf("Frame saved to %q", *out)
	return nil
}

func save(path string, img image.Image) (err error) {
	gray, ok := img.(*image.Gray)
	if !ok {
		return fmt.Errorf("frame is %T, want *image.Gray", img)
	}
	f, err := imgfile.FormatFor(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return imgfile.Encode(file, gray, f)
}
