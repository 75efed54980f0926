package main

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"golang.org/x/sync/singleflight"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/imgfile"
	"github.com/marben/mandelzoom/render"
)

//go:embed static
var staticFiles embed.FS

// maxRenderSide caps both sides of images requested through /render.
const maxRenderSide = 4096

type server struct {
	bounds     mandel.Bounds
	home       mandel.Viewport
	renderOpts []render.Option

	// renderer renders the tiles of /render images
	renderer mandel.Renderer

	// originPatterns are passed to websocket.AcceptOptions. Same-origin requests are always allowed.
	originPatterns []string

	// renders coalesces identical concurrent /render requests
	renders singleflight.Group
}

func newServer(b mandel.Bounds, home mandel.Viewport, opts ...render.Option) *server {
	return &server{
		bounds:     b,
		home:       home,
		renderOpts: opts,
		renderer:   render.RendererImpl{},
	}
}

// routes serves the embedded page at /, the zoom websocket at /ws and one-shot images at /render
func (s *server) routes() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.HandleFunc("GET /render", s.handleRender)
	mux.Handle("GET /", http.FileServerFS(static))
	return mux
}

type renderRequest struct {
	bounds mandel.Bounds
	view   mandel.Viewport
	format imgfile.Format
}

// parseRenderRequest reads ?size=WxH&ul=RE,IM&lr=RE,IM[&format=png|bmp|tiff].
// size defaults to the session size, ul/lr default to the home viewport.
func (s *server) parseRenderRequest(r *http.Request) (renderRequest, error) {
	q := r.URL.Query()
	req := renderRequest{bounds: s.bounds, view: s.home, format: imgfile.PNG}

	if v := q.Get("size"); v != "" {
		b, ok := mandel.ParseBounds(v)
		if !ok {
			return req, fmt.Errorf("error parsing size %q", v)
		}
		if b.W > maxRenderSide || b.H > maxRenderSide {
			return req, fmt.Errorf("size %s exceeds %dx%d", b, maxRenderSide, maxRenderSide)
		}
		req.bounds = b
	}
	if v := q.Get("ul"); v != "" {
		ul, ok := mandel.ParseComplex(v)
		if !ok {
			return req, fmt.Errorf("error parsing upper left corner point %q", v)
		}
		req.view.UpperLeft = ul
	}
	if v := q.Get("lr"); v != "" {
		lr, ok := mandel.ParseComplex(v)
		if !ok {
			return req, fmt.Errorf("error parsing lower right corner point %q", v)
		}
		req.view.LowerRight = lr
	}
	if err := req.view.Check(); err != nil {
		return req, err
	}
	if v := q.Get("format"); v != "" {
		f, err := imgfile.ParseFormat(v)
		if err != nil {
			return req, err
		}
		req.format = f
	}
	return req, nil
}

func (rr renderRequest) key() string {
	return fmt.Sprintf("%s|%s|%s", rr.bounds, rr.view, rr.format)
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// shared by every caller with the same key, so one of them leaving must not cancel it
	ctx := context.WithoutCancel(r.Context())
	body, err, shared := s.renders.Do(req.key(), func() (any, error) {
		img, err := render.Tiles(ctx, s.renderer, req.bounds, req.view, s.renderOpts...)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := imgfile.Encode(&buf, img, req.format); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		log.Printf("render %s: %v", req.key(), err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	if shared {
		mandel.Logger().Debug("render shared", "key", req.key())
	}

	w.Header().Set("Content-Type", req.format.ContentType())
	if _, err := w.Write(body.([]byte)); err != nil {
		log.Printf("render %s: write response: %v", req.key(), err)
	}
}
