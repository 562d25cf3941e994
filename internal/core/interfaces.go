package core

import (
	"errors"

	"github.com/dkeye/RoomChat/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

type SessionID string

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// LineConnection abstracts the outbound half of a client transport.
// Owned by the adapter; the adapter must Close() it.
type LineConnection interface {
	// TrySend queues one line without blocking. A queued line is written
	// whole, never interleaved with another TrySend on the same connection.
	// A full queue yields ErrBackpressure, a closed one ErrConnClosed.
	TrySend(line string) error
	Close()
}

// Dropped is a recipient a broadcast could not queue a line for.
type Dropped struct {
	Member *Member
	Err    error
}

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []Dropped
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID       SessionID `json:"id"`
	Username string    `json:"username"`
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"client_count"`
}
