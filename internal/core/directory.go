package core

import (
	"slices"
	"strings"
	"sync"

	"github.com/dkeye/RoomChat/internal/domain"
	"github.com/rs/zerolog/log"
)

// Directory is the process-wide registry of rooms by name.
// Rooms are created on first join and dropped once empty.
type Directory struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]*Room
}

func NewDirectory() *Directory {
	return &Directory{rooms: make(map[domain.RoomName]*Room)}
}

// GetOrCreate returns the single registered Room for name, creating it if needed.
func (d *Directory) GetOrCreate(name domain.RoomName) *Room {
	d.mu.RLock()
	room, ok := d.rooms[name]
	d.mu.RUnlock()
	if ok {
		return room
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if room, ok = d.rooms[name]; ok {
		return room
	}
	room = NewRoom(name)
	d.rooms[name] = room
	log.Info().Str("module", "core.directory").Str("room", string(name)).Msg("room created")
	return room
}

func (d *Directory) Lookup(name domain.RoomName) (*Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[name]
	return room, ok
}

// Join adds m to the registered room for name. If the room it found was
// retired concurrently, it retries against the freshly registered one.
func (d *Directory) Join(name domain.RoomName, m *Member) *Room {
	for {
		room := d.GetOrCreate(name)
		if err := room.AddMember(m); err == nil {
			return room
		}
	}
}

// RemoveIfEmpty unregisters the room for name if it has no members.
// The emptiness check and the removal happen under both locks, so a
// concurrent AddMember either lands first (room kept) or sees ErrRoomClosed.
func (d *Directory) RemoveIfEmpty(name domain.RoomName) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	room, ok := d.rooms[name]
	if !ok || !room.retireIfEmpty() {
		return false
	}
	delete(d.rooms, name)
	log.Info().Str("module", "core.directory").Str("room", string(name)).Msg("room removed")
	return true
}

// Rooms returns a snapshot of registered rooms sorted by name.
func (d *Directory) Rooms() []*Room {
	d.mu.RLock()
	out := make([]*Room, 0, len(d.rooms))
	for _, r := range d.rooms {
		out = append(out, r)
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Room) int { return strings.Compare(string(a.name), string(b.name)) })
	return out
}

// List is a snapshot of rooms with their member counts.
func (d *Directory) List() []RoomInfo {
	rooms := d.Rooms()
	out := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		if r.Closed() {
			continue
		}
		out = append(out, RoomInfo{Name: r.name, MemberCount: r.MemberCount()})
	}
	return out
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}
