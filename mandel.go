package mandel

import (
	"errors"
	"image"
	"math"
	"sort"
	"strings"
)

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport returns the region as upper-left / lower-right corners.
// Imaginary axis grows upwards, so the upper edge is Ymax.
func (r Region) Viewport() Viewport {
	return Viewport{
		UpperLeft:  complex(r.Xmin, r.Ymax),
		LowerRight: complex(r.Xmax, r.Ymin),
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Full set, slightly padded
	Full = Region{
		Xmin: -2.5,
		Xmax: 1.0,
		Ymin: -1.25,
		Ymax: 1.25,
	}

	// Home – upper-left quadrant of the main cardioid, the view the zoom window opens with
	Home = Region{
		Xmin: -0.75,
		Xmax: 0,
		Ymin: 0,
		Ymax: 0.75,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var regions = map[string]Region{
	"full":     Full,
	"home":     Home,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
	"minibrot": MinibrotInMiniSpiral,
}

var ErrUnknownRegion = errors.New("unknown region")

// LookupRegion finds a landmark by its short name (case insensitive).
func LookupRegion(name string) (Region, error) {
	r, ok := regions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Region{}, ErrUnknownRegion
	}
	return r, nil
}

// RegionNames lists the names accepted by LookupRegion, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for n := range regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bounds is the size of the pixel grid in pixels
type Bounds struct {
	W, H int
}

// Valid reports whether both sides are positive and an RGB buffer of the grid
// (W*H*3 bytes) fits into an int.
func (b Bounds) Valid() bool {
	return b.W > 0 && b.H > 0 && b.W <= math.MaxInt/b.H/3
}

func (b Bounds) Pixels() int { return b.W * b.H }

// Rect returns the pixel grid as an image rectangle anchored at 0,0.
func (b Bounds) Rect() image.Rectangle { return image.Rect(0, 0, b.W, b.H) }
