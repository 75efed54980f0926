package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/imgfile"
	"github.com/marben/mandelzoom/zoom"
)

// handleWebsocket upgrades the connection and runs a zoom session on it
func (s *server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("got connection from: %s", r.RemoteAddr)

	sess := &session{
		conn: c,
		ctrl: zoom.NewController(s.bounds, s.home, s.renderOpts...),
	}
	err = sess.serve(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Printf("connection %s closed", r.RemoteAddr)
		return
	}
	if err != nil {
		log.Printf("session %s: %v", r.RemoteAddr, err)
		return
	}
	c.Close(websocket.StatusNormalClosure, "")
}

// session is one websocket client zooming through its own viewport
type session struct {
	conn *websocket.Conn
	ctrl *zoom.Controller
}

// serve pushes the first frame and then answers commands until the connection fails.
func (sess *session) serve(ctx context.Context) error {
	if err := sess.sendFrame(ctx); err != nil {
		return err
	}
	for {
		var cmd mandel.Command
		if err := wsjson.Read(ctx, sess.conn, &cmd); err != nil {
			return err
		}

		if err := sess.apply(cmd); err != nil {
			info := mandel.FrameInfo{Depth: sess.ctrl.Depth(), Error: err.Error()}
			if err := wsjson.Write(ctx, sess.conn, info); err != nil {
				return fmt.Errorf("write error reply: %w", err)
			}
			continue
		}

		if err := sess.sendFrame(ctx); err != nil {
			return err
		}
	}
}

var errBadCommand = errors.New("bad command")

func (sess *session) apply(cmd mandel.Command) error {
	switch cmd.Op {
	case mandel.OpClick:
		b := sess.ctrl.Bounds()
		if cmd.X < 0 || cmd.Y < 0 || cmd.X > float64(b.W) || cmd.Y > float64(b.H) {
			return fmt.Errorf("%w: click %g,%g outside of %s", errBadCommand, cmd.X, cmd.Y, b)
		}
		sess.ctrl.Recenter(cmd.X, cmd.Y)
	case mandel.OpReset:
		sess.ctrl.Reset()
	case mandel.OpRegion:
		r, err := mandel.LookupRegion(cmd.Region)
		if err != nil {
			return fmt.Errorf("%w: region %q: %w", errBadCommand, cmd.Region, err)
		}
		sess.ctrl.Jump(r.Viewport())
	default:
		return fmt.Errorf("%w: unknown op %q", errBadCommand, cmd.Op)
	}
	return nil
}

// sendFrame renders the current viewport and sends its FrameInfo followed by the PNG
func (sess *session) sendFrame(ctx context.Context) error {
	pix, v, depth := sess.ctrl.Frame(mandel.Gray)
	b := sess.ctrl.Bounds()

	var buf bytes.Buffer
	if err := imgfile.Encode(&buf, imgfile.Gray(pix, b), imgfile.PNG); err != nil {
		return err
	}

	if err := wsjson.Write(ctx, sess.conn, mandel.NewFrameInfo(v, b, depth)); err != nil {
		return fmt.Errorf("write frame info: %w", err)
	}
	if err := sess.conn.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
