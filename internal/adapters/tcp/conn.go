package tcp

import (
	"bufio"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkeye/RoomChat/internal/adapters/outbox"
)

// lineConn is a newline-delimited text endpoint over a net.Conn.
// Reads happen on the session goroutine, writes on writePump only.
type lineConn struct {
	nc           net.Conn
	scanner      *bufio.Scanner
	box          *outbox.Queue
	writeTimeout time.Duration
}

func newLineConn(nc net.Conn, readLimit, sendBuffer int, writeTimeout time.Duration) *lineConn {
	sc := bufio.NewScanner(nc)
	sc.Buffer(make([]byte, 0, min(readLimit, 512)), readLimit)
	return &lineConn{
		nc:           nc,
		scanner:      sc,
		box:          outbox.New(sendBuffer),
		writeTimeout: writeTimeout,
	}
}

// ReadLine returns the next line without its terminator ("\n" or "\r\n").
func (c *lineConn) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return c.scanner.Text(), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *lineConn) TrySend(line string) error { return c.box.TrySend(line) }

// Close stops accepting lines and unblocks a pending ReadLine. Queued lines
// are still flushed by writePump, which owns closing the socket.
func (c *lineConn) Close() {
	c.box.Close()
	_ = c.nc.SetReadDeadline(time.Now())
}

func (c *lineConn) writePump(logger zerolog.Logger) {
	defer func() {
		_ = c.nc.Close()
		logger.Debug().Msg("writePump closed")
	}()
	for line := range c.box.Lines() {
		if err := c.nc.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			logger.Error().Err(err).Msg("writePump set deadline")
			c.Close()
			return
		}
		if _, err := io.WriteString(c.nc, line+"\n"); err != nil {
			logger.Warn().Err(err).Msg("writePump write error")
			c.Close()
			return
		}
	}
}
