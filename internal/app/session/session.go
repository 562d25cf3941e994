// Package session runs the per-connection control loop: it reads one line
// at a time, interprets commands and chat text, and drives membership
// through the orchestrator.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"

	"github.com/dkeye/RoomChat/internal/app/orch"
	"github.com/dkeye/RoomChat/internal/core"
	"github.com/dkeye/RoomChat/internal/domain"
)

// Conn is the transport endpoint a session drives. Owned by the adapter.
// Close must unblock a pending ReadLine.
type Conn interface {
	ReadLine() (string, error)
	core.LineConnection
}

type Session struct {
	orch   *orch.Orchestrator
	conn   Conn
	member *core.Member
	now    func() time.Time
	logger zerolog.Logger
}

type options struct {
	id   core.SessionID
	name string
	now  func() time.Time
}

type Option func(*options)

func WithID(id core.SessionID) Option {
	return func(o *options) { o.id = id }
}

// WithName sets the initial display name. Invalid names fall back to a guest name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(o *orch.Orchestrator, conn Conn, opts ...Option) *Session {
	cfg := options{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = core.SessionID(uuid.NewString())
	}
	if domain.ValidateUsername(cfg.name) != nil {
		cfg.name = domain.GuestName()
	}
	// the name was validated above
	member, _ := core.NewMember(cfg.id, cfg.name, conn)
	return &Session{
		orch:   o,
		conn:   conn,
		member: member,
		now:    cfg.now,
		logger: log.With().Str("module", "session").Str("sid", string(cfg.id)).Logger(),
	}
}

func (s *Session) Member() *core.Member { return s.member }

// Run serves the connection until end of input, a transport error, /quit,
// or ctx cancellation. The leave sequence and connection release run exactly
// once on every path, including a panic in command handling.
func (s *Session) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, s.conn.Close)
	defer stop()

	s.orch.Connect(s.member, cancel)
	defer s.release()
	s.logger.Info().Str("user", s.member.Name()).Msg("connected")

	var pc panics.Catcher
	pc.Try(func() { err = s.serve(ctx) })
	if r := pc.Recovered(); r != nil {
		s.logger.Error().Str("panic", r.String()).Msg("session panicked")
		err = r.AsError()
	}
	return err
}

func (s *Session) release() {
	s.leaveRoom()
	s.orch.Disconnect(s.member)
	s.conn.Close()
	s.logger.Info().Str("user", s.member.Name()).Msg("disconnected")
}
