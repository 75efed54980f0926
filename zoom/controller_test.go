package zoom

import (
	"bytes"
	"sync"
	"testing"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
)

func TestControllerRecenter(t *testing.T) {
	b := mandel.Bounds{W: 100, H: 100}
	home := mandel.Viewport{UpperLeft: complex(-2, 1), LowerRight: complex(1, -1)}
	c := NewController(b, home)

	if got := c.Snapshot(); got != home {
		t.Fatalf("Snapshot = %v, want %v", got, home)
	}

	got := c.Recenter(50, 50)
	if want := home.Recenter(50, 50, b); got != want {
		t.Errorf("Recenter = %v, want %v", got, want)
	}
	if c.Snapshot() != got {
		t.Errorf("Snapshot %v does not match returned %v", c.Snapshot(), got)
	}
	if got.Width() != home.Width()*7/8 {
		t.Errorf("width %g, want %g", got.Width(), home.Width()*7/8)
	}

	c.Recenter(10, 90)
	if c.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", c.Depth())
	}

	if got := c.Reset(); got != home || c.Snapshot() != home || c.Depth() != 0 {
		t.Errorf("after Reset: %v, depth %d", c.Snapshot(), c.Depth())
	}

	dragon := mandel.ValleyOfTheDragon.Viewport()
	c.Recenter(1, 1)
	c.Jump(dragon)
	if c.Snapshot() != dragon || c.Depth() != 0 {
		t.Errorf("after Jump: %v, depth %d", c.Snapshot(), c.Depth())
	}
}

func TestControllerConcurrent(t *testing.T) {
	b := mandel.Bounds{W: 16, H: 16}
	c := NewController(b, mandel.Full.Viewport(), render.WithWorkers(2))

	const clickers, clicks = 4, 25
	var wg sync.WaitGroup
	for i := range clickers {
		wg.Go(func() {
			for j := range clicks {
				c.Recenter(float64((i+j)%b.W), float64(j%b.H))
			}
		})
	}
	for range 2 {
		wg.Go(func() {
			for range clicks {
				if v := c.Snapshot(); !v.Valid() {
					t.Errorf("observed invalid viewport %v", v)
					return
				}
				pix, v, _ := c.Frame(mandel.Gray)
				if !bytes.Equal(pix, render.Image(b, v).Pix) {
					t.Errorf("frame does not match its viewport %v", v)
					return
				}
			}
		})
	}
	wg.Wait()

	if c.Depth() != clickers*clicks {
		t.Errorf("Depth = %d, want %d", c.Depth(), clickers*clicks)
	}
}

func TestControllerFrame(t *testing.T) {
	b := mandel.Bounds{W: 10, H: 6}
	c := NewController(b, mandel.Home.Viewport())

	gray, v, depth := c.Frame(mandel.Gray)
	if v != mandel.Home.Viewport() || depth != 0 {
		t.Errorf("frame viewport %v, depth %d", v, depth)
	}
	if !bytes.Equal(gray, render.Image(b, v).Pix) {
		t.Error("gray frame differs from render.Image")
	}

	c.Recenter(3, 2)
	rgb, v, depth := c.Frame(mandel.RGB)
	if len(rgb) != 3*b.Pixels() {
		t.Fatalf("rgb frame has %d bytes", len(rgb))
	}
	if v != c.Snapshot() || depth != 1 {
		t.Errorf("frame viewport %v, depth %d; want %v, 1", v, depth, c.Snapshot())
	}
	want := render.Image(b, v)
	for i := range b.Pixels() {
		if rgb[3*i] != want.Pix[i] {
			t.Fatalf("rgb pixel %d = %d, gray %d", i, rgb[3*i], want.Pix[i])
		}
	}
}

func TestControllerStateConsistent(t *testing.T) {
	b := mandel.Bounds{W: 16, H: 16}
	home := mandel.Full.Viewport()
	c := NewController(b, home)

	// every click hits the same pixel, so the viewport after n clicks is fixed
	const clicks = 50
	views := []mandel.Viewport{home}
	for range clicks {
		views = append(views, views[len(views)-1].Recenter(4, 12, b))
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		for range clicks {
			c.Recenter(4, 12)
		}
	})
	wg.Go(func() {
		for range clicks {
			v, depth := c.State()
			if v != views[depth] {
				t.Errorf("state %v at depth %d, want %v", v, depth, views[depth])
				return
			}
		}
	})
	wg.Wait()
}

func TestControllerCompareAndRecenter(t *testing.T) {
	b := mandel.Bounds{W: 8, H: 8}
	home := mandel.Viewport{UpperLeft: complex(-2, 2), LowerRight: complex(2, -2)}
	c := NewController(b, home)

	// first click on the frame showing home
	v1, ok := c.CompareAndRecenter(home, 6, 2)
	if !ok || v1 != home.Recenter(6, 2, b) {
		t.Fatalf("CompareAndRecenter(home) = %v, %v", v1, ok)
	}

	// second click while home is still on screen is dropped
	got, ok := c.CompareAndRecenter(home, 1, 1)
	if ok || got != v1 {
		t.Errorf("stale click = %v, %v; want %v, false", got, ok, v1)
	}
	if v, depth := c.State(); v != v1 || depth != 1 {
		t.Errorf("after stale click: %v, depth %d", v, depth)
	}

	// once v1 is shown, clicks on it apply again
	v2, ok := c.CompareAndRecenter(v1, 1, 1)
	if !ok || v2 != v1.Recenter(1, 1, b) {
		t.Errorf("CompareAndRecenter(v1) = %v, %v", v2, ok)
	}
	if c.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", c.Depth())
	}

	c.Reset()
	if _, ok := c.CompareAndRecenter(v2, 4, 4); ok {
		t.Error("click on a frame from before Reset applied")
	}
}
