// Package remote serves the viewer over a websocket. Each connection owns a
// navigator; clients send navigation commands and receive whole fields.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/zeromicro/go-zero/core/syncx"
	"golang.org/x/sync/errgroup"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/logging"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/navigator"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/types"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     navigator.Config
	origins []string
	flight  syncx.SingleFlight
	compute navigator.RenderFunc
}

type ServerOption func(*Server)

// WithOriginPatterns restricts which browser origins may connect.
func WithOriginPatterns(patterns ...string) ServerOption {
	return func(s *Server) {
		s.origins = patterns
	}
}

func NewServer(cfg navigator.Config, opts ...ServerOption) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		flight:  syncx.NewSingleFlight(),
		compute: escape.Compute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe runs until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	return s.Serve(ctx, l)
}

func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Logger().Info("remote viewer listening", "addr", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// render shares one computation between sessions asking for the same
// region at the same time. Shared fields are never written again.
func (s *Server) render(v viewport.Viewport, w, h, maxIter int) *escape.Field {
	key := fmt.Sprintf("%x:%x:%x:%x/%dx%d/%d", v.MinRe, v.MaxRe, v.MinIm, v.MaxIm, w, h, maxIter)
	val, fresh, _ := s.flight.DoEx(key, func() (any, error) {
		return s.compute(v, w, h, maxIter), nil
	})
	if !fresh {
		logging.Logger().Debug("shared field", "region", v.String())
	}
	return val.(*escape.Field)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		logging.Logger().Warn("websocket accept", "err", err)
		return
	}
	defer c.CloseNow()

	log := logging.Logger().With("remote", r.RemoteAddr)
	log.Info("client connected")

	err = s.session(r.Context(), c)
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		log.Info("client disconnected")
		c.Close(websocket.StatusNormalClosure, "")
	default:
		log.Warn("session ended", "err", err)
		c.Close(websocket.StatusInternalError, "session error")
	}
}

func (s *Server) session(ctx context.Context, c *websocket.Conn) error {
	nav, err := navigator.New(s.cfg, navigator.WithRenderFunc(s.render))
	if err != nil {
		return err
	}

	cmds := types.NewControlledQueue[navigator.Command]()
	readErr := make(chan error, 1)
	go func() {
		defer cmds.Close()
		readErr <- readCommands(ctx, c, cmds)
	}()

	var seq uint64
	for {
		if f, ok := nav.Refresh(); ok {
			seq++
			if err := writeFrame(ctx, c, seq, nav.Viewport(), f); err != nil {
				return err
			}
		}

		cmd, ok := cmds.Recv()
		if !ok {
			return <-readErr
		}
		nav.Apply(cmd)
		// anything that piled up during the last frame goes into the next one
		for _, cmd := range cmds.Drain() {
			nav.Apply(cmd)
		}
	}
}

func readCommands(ctx context.Context, c *websocket.Conn, cmds *types.ControlledQueue[navigator.Command]) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg commandMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			logging.Logger().Debug("dropping message", "err", err)
			continue
		}
		cmd, err := msg.command()
		if err != nil {
			logging.Logger().Debug("dropping message", "err", err)
			continue
		}
		if !cmds.Send(cmd) {
			return nil
		}
	}
}

func writeFrame(ctx context.Context, c *websocket.Conn, seq uint64, v viewport.Viewport, f *escape.Field) error {
	header, err := sonic.Marshal(headerFor(seq, v, f))
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if err := c.Write(ctx, websocket.MessageText, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	payload := appendCounts(make([]byte, 0, 4*len(f.Counts)), f)
	if err := c.Write(ctx, websocket.MessageBinary, payload); err != nil {
		return fmt.Errorf("write counts: %w", err)
	}
	return nil
}
