package ws

import (
	"io"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dkeye/RoomChat/internal/adapters/outbox"
)

// Conn adapts a WebSocket to the line protocol. Every outbound line is one
// text frame; inbound frames may carry several newline-separated lines.
type Conn struct {
	ws      *websocket.Conn
	box     *outbox.Queue
	pending []string

	writeTimeout time.Duration
	pingPeriod   time.Duration
}

func NewConn(ws *websocket.Conn, readLimit, sendBuffer int, writeTimeout, pingPeriod time.Duration) *Conn {
	c := &Conn{
		ws:           ws,
		box:          outbox.New(sendBuffer),
		writeTimeout: writeTimeout,
		pingPeriod:   pingPeriod,
	}
	ws.SetReadLimit(int64(readLimit))
	if pingPeriod > 0 {
		pongWait := pingPeriod * 10 / 9
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
	}
	return c
}

func (c *Conn) ReadLine() (string, error) {
	for len(c.pending) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return "", io.EOF
			}
			return "", err
		}
		c.pending = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}
	line := strings.TrimSuffix(c.pending[0], "\r")
	c.pending = c.pending[1:]
	return line, nil
}

func (c *Conn) TrySend(line string) error { return c.box.TrySend(line) }

// Close stops accepting lines and unblocks a pending ReadLine. WritePump
// flushes what is queued, sends a close frame and releases the socket.
func (c *Conn) Close() {
	c.box.Close()
	// Conn.SetReadDeadline belongs to the single reader; go below it.
	_ = c.ws.NetConn().SetReadDeadline(time.Now())
}

func (c *Conn) WritePump(logger zerolog.Logger) {
	var tick <-chan time.Time
	if c.pingPeriod > 0 {
		ticker := time.NewTicker(c.pingPeriod)
		defer ticker.Stop()
		tick = ticker.C
	}
	defer func() {
		_ = c.ws.Close()
		logger.Debug().Msg("writePump closed")
	}()

	lines := c.box.Lines()
	for {
		select {
		case line, ok := <-lines:
			if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				logger.Error().Err(err).Msg("writePump set deadline")
				c.Close()
				return
			}
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				logger.Warn().Err(err).Msg("writePump write error")
				c.Close()
				return
			}
		case <-tick:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn().Err(err).Msg("writePump ping error")
				c.Close()
				return
			}
		}
	}
}
