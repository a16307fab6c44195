package remote

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
)

// frames are far larger than the library's default read limit
const clientReadLimit = 256 << 20

// Client drives a remote navigator.
type Client struct {
	conn *websocket.Conn
}

func Dial(ctx context.Context, url string) (*Client, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}
	c.SetReadLimit(clientReadLimit)
	return &Client{conn: c}, nil
}

func (cl *Client) Send(ctx context.Context, cmd navigator.Command) error {
	msg, err := messageFor(cmd)
	if err != nil {
		return err
	}
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	return cl.conn.Write(ctx, websocket.MessageText, data)
}

// ReadFrame blocks until the next complete frame arrives.
func (cl *Client) ReadFrame(ctx context.Context) (*Frame, error) {
	typ, data, err := cl.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageText {
		return nil, fmt.Errorf("%w: expected frame header, got %v", ErrBadMessage, typ)
	}
	var h frameHeader
	if err := sonic.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadMessage, err)
	}

	typ, payload, err := cl.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageBinary {
		return nil, fmt.Errorf("%w: expected counts, got %v", ErrBadMessage, typ)
	}
	return decodeFrame(h, payload)
}

func (cl *Client) Close() error {
	return cl.conn.Close(websocket.StatusNormalClosure, "")
}
