// Package ws serves chat sessions over WebSocket for browser clients.
package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/RoomChat/internal/app/orch"
	"github.com/dkeye/RoomChat/internal/app/session"
	"github.com/dkeye/RoomChat/internal/config"
	"github.com/dkeye/RoomChat/internal/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	Orch *orch.Orchestrator
	Cfg  *config.Config
}

func NewController(o *orch.Orchestrator, cfg *config.Config) *Controller {
	return &Controller{Orch: o, Cfg: cfg}
}

// Handle upgrades the request and runs a session on it until it ends.
// ctx is the server lifetime, not the request's.
func (ctl *Controller) Handle(ctx context.Context, c *gin.Context, name string) {
	sid := core.SessionID(uuid.NewString())
	logger := log.With().Str("module", "ws").Str("sid", string(sid)).Logger()

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}
	logger.Info().Str("remote", c.ClientIP()).Msg("new WS connection")

	conn := NewConn(wsConn, ctl.Cfg.ReadLimit, ctl.Cfg.SendBuffer, ctl.Cfg.WriteTimeout, ctl.Cfg.PingPeriod)
	go conn.WritePump(logger)

	sess := session.New(ctl.Orch, conn, session.WithID(sid), session.WithName(name))
	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn().Err(err).Msg("session ended with error")
	}
}
