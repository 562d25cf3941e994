package core

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/dkeye/RoomChat/internal/domain"
	"github.com/rs/zerolog/log"
)

// ErrRoomClosed is returned by AddMember once the directory has retired the room.
var ErrRoomClosed = errors.New("room closed")

// Room is a threadsafe in-memory broadcast group.
// It never closes adapter-owned resources.
type Room struct {
	name domain.RoomName

	mu      sync.RWMutex
	members map[*Member]uint64
	seq     uint64
	closed  bool
}

func NewRoom(name domain.RoomName) *Room {
	return &Room{
		name:    name,
		members: make(map[*Member]uint64),
	}
}

func (r *Room) Name() domain.RoomName { return r.name }

// AddMember is idempotent. It fails only with ErrRoomClosed.
func (r *Room) AddMember(m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomClosed
	}
	if _, ok := r.members[m]; ok {
		return nil
	}
	r.seq++
	r.members[m] = r.seq
	log.Info().Str("module", "core.room").Str("room", string(r.name)).Str("sid", string(m.ID())).Msg("member added")
	return nil
}

// RemoveMember reports whether m was a member.
func (r *Room) RemoveMember(m *Member) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m]; !ok {
		return false
	}
	delete(r.members, m)
	log.Info().Str("module", "core.room").Str("room", string(r.name)).Str("sid", string(m.ID())).Msg("member removed")
	return true
}

func (r *Room) Has(m *Member) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[m]
	return ok
}

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *Room) IsEmpty() bool { return r.MemberCount() == 0 }

// Closed reports whether the room was retired from its directory.
func (r *Room) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Members returns a snapshot in join order.
func (r *Room) Members() []*Member {
	type joined struct {
		m   *Member
		seq uint64
	}
	r.mu.RLock()
	snap := make([]joined, 0, len(r.members))
	for m, seq := range r.members {
		snap = append(snap, joined{m, seq})
	}
	r.mu.RUnlock()

	slices.SortFunc(snap, func(a, b joined) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]*Member, len(snap))
	for i, j := range snap {
		out[i] = j.m
	}
	return out
}

func (r *Room) MembersSnapshot() []MemberDTO {
	members := r.Members()
	out := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, m.DTO())
	}
	return out
}

// Broadcast queues line for every member except `except` (may be nil).
// Sends happen against a snapshot, outside the lock; a failing recipient
// is reported in Dropped and does not stop delivery to the others.
func (r *Room) Broadcast(line string, except *Member) PublishResult {
	r.mu.RLock()
	recipients := make([]*Member, 0, len(r.members))
	for m := range r.members {
		if m != except {
			recipients = append(recipients, m)
		}
	}
	r.mu.RUnlock()

	res := PublishResult{}
	for _, m := range recipients {
		if err := m.Send(line); err != nil {
			res.Dropped = append(res.Dropped, Dropped{Member: m, Err: err})
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.name)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *Room) BroadcastAll(line string) PublishResult {
	return r.Broadcast(line, nil)
}

// retireIfEmpty closes an empty room so no later AddMember can succeed.
// Called by the directory with its own lock held.
func (r *Room) retireIfEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.members) > 0 {
		return false
	}
	r.closed = true
	return true
}
