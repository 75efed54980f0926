package mandel

// Websocket zoom protocol.
//
// The client sends Command values as JSON text messages. For every command the
// server answers with a FrameInfo text message; unless FrameInfo.Error is set it is
// followed by a binary message holding the frame encoded as grayscale PNG.
// The first frame is pushed right after the connection is accepted.

const (
	OpClick  = "click"
	OpReset  = "reset"
	OpRegion = "region"
)

type Command struct {
	Op     string  `json:"op"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Region string  `json:"region,omitempty"`
}

type FrameInfo struct {
	UpperLeft  string `json:"ul,omitempty"` // "re,im", see FormatComplex
	LowerRight string `json:"lr,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Depth      int    `json:"depth"` // clicks since the last reset or jump
	Error      string `json:"error,omitempty"`
}

// NewFrameInfo describes a frame of grid b rendered for v.
func NewFrameInfo(v Viewport, b Bounds, depth int) FrameInfo {
	return FrameInfo{
		UpperLeft:  FormatComplex(v.UpperLeft),
		LowerRight: FormatComplex(v.LowerRight),
		Width:      b.W,
		Height:     b.H,
		Depth:      depth,
	}
}

// Viewport parses the corners back. ok is false if either corner is malformed.
func (fi FrameInfo) Viewport() (Viewport, bool) {
	ul, ok := ParseComplex(fi.UpperLeft)
	if !ok {
		return Viewport{}, false
	}
	lr, ok := ParseComplex(fi.LowerRight)
	if !ok {
		return Viewport{}, false
	}
	return Viewport{UpperLeft: ul, LowerRight: lr}, true
}
