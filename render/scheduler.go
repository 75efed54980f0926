package render

import (
	"image"
	"sync"
)

// tileScheduler hands out the tiles of one render and tracks progress.
// popTile and tileFinished can be called from multiple goroutines in parallel.
type tileScheduler struct {
	tiles []image.Rectangle
	next  int

	totalPixels    int
	finishedPixels int
	m              sync.Mutex

	onProgress func(done float32)
}

// newTileScheduler cuts r into tiles of tileW × tileH, handed out row by row from the top.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func newTileScheduler(r image.Rectangle, tileW, tileH int, onProgress func(float32)) *tileScheduler {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	cols := (r.Dx() + tileW - 1) / tileW
	rows := (r.Dy() + tileH - 1) / tileH
	tiles := make([]image.Rectangle, 0, cols*rows)
	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			tiles = append(tiles, image.Rect(x, y, x+tileW, y+tileH).Intersect(r))
		}
	}

	return &tileScheduler{
		tiles:       tiles,
		totalPixels: r.Dx() * r.Dy(),
		onProgress:  onProgress,
	}
}

func (ts *tileScheduler) len() int { return len(ts.tiles) }

func (ts *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	ts.m.Lock()
	defer ts.m.Unlock()

	if ts.next == len(ts.tiles) {
		return image.Rectangle{}, false
	}
	tile = ts.tiles[ts.next]
	ts.next++
	return tile, true
}

func (ts *tileScheduler) tileFinished(tile image.Rectangle) {
	ts.m.Lock()
	ts.finishedPixels += tile.Dx() * tile.Dy()
	done := ts.finished()
	ts.m.Unlock()

	if ts.onProgress != nil {
		ts.onProgress(done)
	}
}

// finished must be called with ts.m held
func (ts *tileScheduler) finished() float32 {
	if ts.totalPixels == 0 {
		return 1
	}
	return float32(ts.finishedPixels) / float32(ts.totalPixels)
}
