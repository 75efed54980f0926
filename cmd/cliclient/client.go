package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelzoom"
)

// frameReadLimit bounds a single websocket message. Frames are PNG encoded
// so this is well above what the server sends for sizes it accepts.
const frameReadLimit = 64 << 20

var errServer = errors.New("server error")

// zoomClient drives a zoom session on the server
type zoomClient struct {
	conn *websocket.Conn
}

func dial(ctx context.Context, url string) (*zoomClient, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}
	c.SetReadLimit(frameReadLimit)
	return &zoomClient{conn: c}, nil
}

func (zc *zoomClient) Close() error {
	return zc.conn.Close(websocket.StatusNormalClosure, "")
}

// Send issues cmd and waits for the resulting frame.
func (zc *zoomClient) Send(ctx context.Context, cmd mandel.Command) (mandel.FrameInfo, image.Image, error) {
	if err := wsjson.Write(ctx, zc.conn, cmd); err != nil {
		return mandel.FrameInfo{}, nil, fmt.Errorf("write command: %w", err)
	}
	return zc.ReadFrame(ctx)
}

// ReadFrame reads a FrameInfo and, unless it reports an error, the PNG following it.
func (zc *zoomClient) ReadFrame(ctx context.Context) (mandel.FrameInfo, image.Image, error) {
	var info mandel.FrameInfo
	if err := wsjson.Read(ctx, zc.conn, &info); err != nil {
		return info, nil, fmt.Errorf("read frame info: %w", err)
	}
	if info.Error != "" {
		return info, nil, fmt.Errorf("%w: %s", errServer, info.Error)
	}

	typ, data, err := zc.conn.Read(ctx)
	if err != nil {
		return info, nil, fmt.Errorf("read frame: %w", err)
	}
	if typ != websocket.MessageBinary {
		return info, nil, fmt.Errorf("read frame: unexpected %v message", typ)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return info, nil, fmt.Errorf("decode frame: %w", err)
	}
	return info, img, nil
}
