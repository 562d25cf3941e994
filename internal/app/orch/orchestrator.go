package orch

import (
	"github.com/dkeye/RoomChat/internal/app"
	"github.com/dkeye/RoomChat/internal/core"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *core.Directory
	Policy   app.Policy
}

func New() *Orchestrator {
	return &Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    core.NewDirectory(),
		Policy:   app.SimplePolicy{},
	}
}

// Publish fans line out to room, skipping from, and applies the
// back-pressure policy to every recipient that could not take it.
func (o *Orchestrator) Publish(room *core.Room, from *core.Member, line string) core.PublishResult {
	res := room.Broadcast(line, from)
	o.onDropped(room, res.Dropped)
	return res
}

func (o *Orchestrator) PublishAll(room *core.Room, line string) core.PublishResult {
	return o.Publish(room, nil, line)
}

func (o *Orchestrator) onDropped(room *core.Room, dropped []core.Dropped) {
	if o.Policy == nil {
		return
	}
	for _, d := range dropped {
		switch o.Policy.OnBackPressure(room, d.Member, d.Err) {
		case app.KickMember:
			log.Warn().Err(d.Err).Str("module", "orch").Str("sid", string(d.Member.ID())).Str("room", string(room.Name())).Msg("kicking slow member")
			o.Kick(d.Member.ID())
		case app.NoAction:
		}
	}
}
