// Package tcp is the chat Listener: it accepts TCP connections and runs a
// session per connection.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/dkeye/RoomChat/internal/app/orch"
	"github.com/dkeye/RoomChat/internal/app/session"
	"github.com/dkeye/RoomChat/internal/config"
)

var ErrShutdownTimeout = errors.New("sessions did not finish before shutdown timeout")

const acceptBackoff = 50 * time.Millisecond

type Server struct {
	Orch *orch.Orchestrator
	Cfg  *config.Config

	wg conc.WaitGroup
}

func NewServer(o *orch.Orchestrator, cfg *config.Config) *Server {
	return &Server{Orch: o, Cfg: cfg}
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Cfg.TCPAddr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Cfg.TCPAddr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts until ctx is canceled, then waits for live sessions to run
// their cleanup, bounded by the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	log.Info().Str("module", "tcp").Str("addr", ln.Addr().String()).Msg("chat listener started")

	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return s.drain()
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Warn().Err(err).Str("module", "tcp").Msg("accept error")
			time.Sleep(acceptBackoff)
			continue
		}
		s.wg.Go(func() { s.handle(ctx, nc) })
	}
}

func (s *Server) handle(ctx context.Context, nc net.Conn) {
	conn := newLineConn(nc, s.Cfg.ReadLimit, s.Cfg.SendBuffer, s.Cfg.WriteTimeout)
	sess := session.New(s.Orch, conn)
	logger := log.With().Str("module", "tcp").Str("sid", string(sess.Member().ID())).Str("remote", nc.RemoteAddr().String()).Logger()
	logger.Info().Msg("new connection")

	s.wg.Go(func() { conn.writePump(logger) })
	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn().Err(err).Msg("session ended with error")
	}
}

func (s *Server) drain() error {
	log.Info().Str("module", "tcp").Msg("listener stopped, waiting for sessions")
	done := make(chan struct{})
	go func() {
		defer close(done)
		if r := s.wg.WaitAndRecover(); r != nil {
			log.Error().Str("module", "tcp").Str("panic", r.String()).Msg("connection goroutine panicked")
		}
	}()
	select {
	case <-done:
		return nil
	case <-time.After(s.Cfg.ShutdownTimeout):
		return ErrShutdownTimeout
	}
}
