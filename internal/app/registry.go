package app

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dkeye/RoomChat/internal/core"
	"github.com/dkeye/RoomChat/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Member *core.Member
	Cancel context.CancelFunc
}

// Registry tracks live sessions so they can be listed and cancelled from
// outside their own goroutine.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

func (r *Registry) Bind(m *core.Member, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[m.ID()] = &sessionEntry{Member: m, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(m.ID())).Str("user", m.Name()).Msg("bound session")
}

func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) GetSession(sid core.SessionID) (*core.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Member, true
	}
	return nil, false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Cancel asks a session to terminate. Its own goroutine runs the cleanup.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) CancelAll() int {
	r.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(r.sessions))
	for _, e := range r.sessions {
		if e.Cancel != nil {
			cancels = append(cancels, e.Cancel)
		}
	}
	r.mu.RUnlock()
	for _, cancel := range cancels {
		cancel()
	}
	return len(cancels)
}

type SessionInfo struct {
	ID       core.SessionID  `json:"id"`
	Username string          `json:"username"`
	Room     domain.RoomName `json:"room,omitempty"`
}

func (r *Registry) Snapshot() []SessionInfo {
	r.mu.RLock()
	members := make([]*core.Member, 0, len(r.sessions))
	for _, e := range r.sessions {
		members = append(members, e.Member)
	}
	r.mu.RUnlock()

	out := make([]SessionInfo, 0, len(members))
	for _, m := range members {
		info := SessionInfo{ID: m.ID(), Username: m.Name()}
		if room := m.Room(); room != nil {
			info.Room = room.Name()
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b SessionInfo) int {
		return cmp.Or(cmp.Compare(a.Username, b.Username), cmp.Compare(a.ID, b.ID))
	})
	return out
}
