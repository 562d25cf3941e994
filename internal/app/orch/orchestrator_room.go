package orch

import (
	"context"

	"github.com/dkeye/RoomChat/internal/core"
	"github.com/dkeye/RoomChat/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) Connect(m *core.Member, cancel context.CancelFunc) {
	o.Registry.Bind(m, cancel)
}

func (o *Orchestrator) Disconnect(m *core.Member) {
	o.Registry.Unbind(m.ID())
}

// Join makes m a member of the named room. The caller leaves any previous
// room first.
func (o *Orchestrator) Join(m *core.Member, name domain.RoomName) *core.Room {
	room := o.Rooms.Join(name, m)
	m.SetRoom(room)
	log.Info().Str("module", "orch").Str("sid", string(m.ID())).Str("room", string(name)).Msg("added to room")
	return room
}

// Leave drops m from its current room and unregisters the room if that made
// it empty. It returns the room left, or nil.
func (o *Orchestrator) Leave(m *core.Member) *core.Room {
	room := m.Room()
	if room == nil {
		return nil
	}
	room.RemoveMember(m)
	o.Rooms.RemoveIfEmpty(room.Name())
	m.SetRoom(nil)
	log.Info().Str("module", "orch").Str("sid", string(m.ID())).Str("room", string(room.Name())).Msg("left room")
	return room
}

// Kick cancels a session; its own goroutine runs the leave sequence.
func (o *Orchestrator) Kick(sid core.SessionID) bool {
	return o.Registry.Cancel(sid)
}

// EvictRoom kicks every member of the named room.
func (o *Orchestrator) EvictRoom(name domain.RoomName) (int, bool) {
	room, ok := o.Rooms.Lookup(name)
	if !ok {
		return 0, false
	}
	n := 0
	for _, m := range room.Members() {
		if o.Kick(m.ID()) {
			n++
		}
	}
	log.Info().Str("module", "orch").Str("room", string(name)).Int("kicked", n).Msg("room evicted")
	return n, true
}
