package core

import (
	"sync"

	"github.com/dkeye/RoomChat/internal/domain"
)

// Member binds a display name and its transport endpoint.
// This is what a room stores and fans out to. The owning session is the only
// writer of the current room; any goroutine may Send.
type Member struct {
	id   SessionID
	conn LineConnection

	mu   sync.RWMutex
	user domain.User
	room *Room
}

func NewMember(id SessionID, username string, conn LineConnection) (*Member, error) {
	u, err := domain.NewUser(domain.UserID(id), username)
	if err != nil {
		return nil, err
	}
	return &Member{id: id, conn: conn, user: *u}, nil
}

func (m *Member) ID() SessionID { return m.id }

func (m *Member) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Username
}

// Rename validates and applies a new display name, returning the previous one.
// On error the name is unchanged.
func (m *Member) Rename(username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.user.Username
	if err := m.user.SetUsername(username); err != nil {
		return old, err
	}
	return old, nil
}

// Room returns the room the member currently belongs to, or nil.
func (m *Member) Room() *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.room
}

func (m *Member) SetRoom(r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.room = r
}

// Send queues one line for this member. Safe for concurrent use by the
// owning session and any number of broadcasting sessions.
func (m *Member) Send(line string) error {
	return m.conn.TrySend(line)
}

func (m *Member) DTO() MemberDTO {
	return MemberDTO{ID: m.id, Username: m.Name()}
}
