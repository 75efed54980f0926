package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mandel "github.com/marben/mandelzoom"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-workers", "3", "mandel.png", "1000x750", "-1.20,0.35", "-1,0.20"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opts.file != "mandel.png" || opts.bounds != (mandel.Bounds{W: 1000, H: 750}) || opts.workers != 3 {
		t.Errorf("opts = %+v", opts)
	}
	if want := (mandel.Viewport{UpperLeft: complex(-1.20, 0.35), LowerRight: complex(-1, 0.20)}); opts.view != want {
		t.Errorf("view = %v, want %v", opts.view, want)
	}

	opts, err = parseArgs([]string{"-region", "seahorse", "out.tiff", "64x48"})
	if err != nil {
		t.Fatalf("parseArgs -region: %v", err)
	}
	if opts.view != mandel.SeahorseValley.Viewport() {
		t.Errorf("view = %v", opts.view)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"missing corner", []string{"a.png", "10x10", "-1,1"}},
		{"bad size", []string{"a.png", "10x", "-1,1", "1,-1"}},
		{"bad corner", []string{"a.png", "10x10", "-1;1", "1,-1"}},
		{"flipped corners", []string{"a.png", "10x10", "1,-1", "-1,1"}},
		{"unknown extension", []string{"a.gif", "10x10", "-1,1", "1,-1"}},
		{"unknown region", []string{"-region", "atlantis", "a.png", "10x10"}},
		{"region with corners", []string{"-region", "home", "a.png", "10x10", "-1,1", "1,-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			silenceStderr(t)
			if _, err := parseArgs(tt.args); !errors.Is(err, errUsage) {
				t.Errorf("parseArgs(%q) = %v, want usage error", tt.args, err)
			}
		})
	}
}

// silenceStderr hides the usage text printed by the flag set
func silenceStderr(t *testing.T) {
	t.Helper()
	old := os.Stderr
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = f
	t.Cleanup(func() {
		os.Stderr = old
		f.Close()
	})
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandel.png")
	opts := options{
		file:   path,
		bounds: mandel.Bounds{W: 32, H: 24},
		view:   mandel.Full.Viewport(),
		quiet:  true,
	}
	if err := run(opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	head := make([]byte, 8)
	if _, err := io.ReadFull(f, head); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(head), "\x89PNG") {
		t.Errorf("%s is not a png: %q", path, head)
	}
}
