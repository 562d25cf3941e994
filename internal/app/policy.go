package app

import (
	"errors"

	"github.com/dkeye/RoomChat/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

type Policy interface {
	OnBackPressure(room *core.Room, member *core.Member, err error) BackpressureAction
}

// SimplePolicy kicks members whose queue overflowed. Closed connections are
// already on their way out.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ *core.Room, _ *core.Member, err error) BackpressureAction {
	if errors.Is(err, core.ErrBackpressure) {
		return KickMember
	}
	return NoAction
}
