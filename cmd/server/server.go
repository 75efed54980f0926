package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
)

// main is the entry point for the Mandelbrot zoom server.
// Every websocket connection gets its own zoom session; /render serves one-shot images.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		addr    = flag.String("addr", ":8080", "http listen address")
		size    = flag.String("size", "800x600", "frame size of zoom sessions, WxH")
		region  = flag.String("region", "home", "initial landmark of zoom sessions")
		workers = flag.Int("workers", 0, "render goroutines per frame (0 = GOMAXPROCS)")
		origins = flag.String("origins", "", "comma separated extra origin patterns allowed to open websockets")
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

	srv := newServer(b, home.Viewport(), render.WithWorkers(*workers))
	if *origins != "" {
		srv.originPatterns = strings.Split(*origins, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on http://localhost%s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
