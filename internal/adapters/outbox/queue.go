// Package outbox is the bounded per-connection line queue drained by a
// transport's write pump.
package outbox

import (
	"sync"

	"github.com/dkeye/RoomChat/internal/core"
)

var (
	ErrBackpressure = core.ErrBackpressure
	ErrClosed       = core.ErrConnClosed
)

type Queue struct {
	send chan string

	mu     sync.RWMutex
	closed bool
}

func New(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{send: make(chan string, size)}
}

// TrySend never blocks: a full queue yields ErrBackpressure.
func (q *Queue) TrySend(line string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.send <- line:
	default:
		return ErrBackpressure
	}
	return nil
}

// Close stops accepting lines. Lines already queued stay readable from Lines.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.send)
}

func (q *Queue) Closed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Lines is drained by the single write pump.
func (q *Queue) Lines() <-chan string { return q.send }
