package mandel

import (
	"image"
)

// Renderer renders one tile of an imgW × imgH image of viewport v.
// The returned image covers tile in global coordinates.
type Renderer interface {
	RenderTile(v Viewport, tile image.Rectangle, imgW, imgH int) (*image.Gray, error)
}
