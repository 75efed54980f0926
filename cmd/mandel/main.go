// mandel renders a region of the Mandelbrot set into a grayscale image file.
//
//	mandel [flags] FILE PIXELS UPPERLEFT LOWERRIGHT
//	mandel [flags] -region NAME FILE PIXELS
//
// e.g. mandel mandel.png 1000x750 -1.20,0.35 -1,0.20
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/imgfile"
	"github.com/marben/mandelzoom/render"
)

var errUsage = errors.New("usage")

type options struct {
	file    string
	bounds  mandel.Bounds
	view    mandel.Viewport
	workers int
	verbose bool
	quiet   bool
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func parseArgs(args []string) (options, error) {
	var opts options
	var region string

	fs := flag.NewFlagSet("mandel", flag.ContinueOnError)
	fs.IntVar(&opts.workers, "workers", 0, "number of render goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&region, "region", "", "render a named landmark instead of UPPERLEFT LOWERRIGHT: "+strings.Join(mandel.RegionNames(), ", "))
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.BoolVar(&opts.quiet, "q", false, "no progress output")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mandel [flags] FILE PIXELS UPPERLEFT LOWERRIGHT\n")
		fmt.Fprintf(fs.Output(), "       mandel [flags] -region NAME FILE PIXELS\n")
		fmt.Fprintf(fs.Output(), "Example: mandel mandel.png 1000x750 -1.20,0.35 -1,0.20\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	want := 4
	if region != "" {
		want = 2
	}
	if fs.NArg() != want {
		fs.Usage()
		return opts, fmt.Errorf("%w: expected %d arguments, got %d", errUsage, want, fs.NArg())
	}

	opts.file = fs.Arg(0)
	if _, err := imgfile.FormatFor(opts.file); err != nil {
		return opts, fmt.Errorf("%w: %s: %w", errUsage, opts.file, err)
	}

	b, ok := mandel.ParseBounds(fs.Arg(1))
	if !ok {
		return opts, fmt.Errorf("%w: error parsing image dimensions %q", errUsage, fs.Arg(1))
	}
	opts.bounds = b

	if region != "" {
		r, err := mandel.LookupRegion(region)
		if err != nil {
			return opts, fmt.Errorf("%w: %q: %w", errUsage, region, err)
		}
		opts.view = r.Viewport()
		return opts, nil
	}

	ul, ok := mandel.ParseComplex(fs.Arg(2))
	if !ok {
		return opts, fmt.Errorf("%w: error parsing upper left corner point %q", errUsage, fs.Arg(2))
	}
	lr, ok := mandel.ParseComplex(fs.Arg(3))
	if !ok {
		return opts, fmt.Errorf("%w: error parsing lower right corner point %q", errUsage, fs.Arg(3))
	}
	opts.view = mandel.Viewport{UpperLeft: ul, LowerRight: lr}
	if err := opts.view.Check(); err != nil {
		return opts, fmt.Errorf("%w: %w", errUsage, err)
	}

	return opts, nil
}

func run(opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	log.Printf("rendering %s of %s into %q", opts.bounds, opts.view, opts.file)

	renderOpts := []render.Option{render.WithWorkers(opts.workers)}
	if !opts.quiet {
		renderOpts = append(renderOpts, render.WithProgress(newProgressLogger(10)))
	}

	pix := make([]byte, mandel.Gray.BufferLen(opts.bounds))
	render.Fill(pix, opts.bounds, mandel.Gray, opts.view, renderOpts...)

	if err := imgfile.Save(opts.file, pix, opts.bounds); err != nil {
		return fmt.Errorf("imgfile.Save: %w", err)
	}

	log.Printf("fully rendered file saved to %q", opts.file)
	return nil
}
