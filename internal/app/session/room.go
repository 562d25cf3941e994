package session

import (
	"errors"

	"github.com/dkeye/RoomChat/internal/core"
	"github.com/dkeye/RoomChat/internal/domain"
)

func (s *Session) handleJoin(arg string) {
	name := domain.RoomName(arg)
	switch err := name.Validate(); {
	case errors.Is(err, domain.ErrRoomNameEmpty):
		s.reply("SERVER: Usage: /join <room>")
		return
	case errors.Is(err, domain.ErrRoomNameTooLong):
		s.replyf("SERVER: Room name too long (max %d chars).", domain.MaxRoomNameLen)
		return
	}

	if cur := s.member.Room(); cur != nil {
		if cur.Name() == name {
			s.replyf("SERVER: You are already in #%s (%d member(s)).", name, cur.MemberCount())
			return
		}
		s.leaveRoom()
	}

	room := s.orch.Join(s.member, name)
	s.orch.Publish(room, s.member, "SERVER: "+s.member.Name()+" has joined #"+string(name))
	s.replyf("SERVER: Joined #%s (%d member(s)).", name, room.MemberCount())
}

func (s *Session) handleLeave() {
	room := s.leaveRoom()
	if room == nil {
		s.reply("SERVER: You are not in any room.")
		return
	}
	s.replyf("SERVER: You left #%s.", room.Name())
}

func (s *Session) handleRooms() {
	rooms := s.orch.Rooms.List()
	if len(rooms) == 0 {
		s.reply("SERVER: No active rooms. Create one with /join <room>.")
		return
	}
	var current domain.RoomName
	if cur := s.member.Room(); cur != nil {
		current = cur.Name()
	}
	s.reply("SERVER: Active rooms:")
	for _, r := range rooms {
		marker := ""
		if r.Name == current {
			marker = " <- (you are here)"
		}
		s.replyf("  #%s [%d member(s)]%s", r.Name, r.MemberCount, marker)
	}
}

func (s *Session) handleWho() {
	room := s.member.Room()
	if room == nil {
		s.reply("SERVER: You are not in any room.")
		return
	}
	s.replyf("SERVER: Members of #%s:", room.Name())
	for _, m := range room.Members() {
		tag := ""
		if m == s.member {
			tag = " (you)"
		}
		s.reply("  - " + m.Name() + tag)
	}
}

// leaveRoom announces the departure, drops the membership and clears the
// current room. Safe to call when not in a room.
func (s *Session) leaveRoom() *core.Room {
	room := s.member.Room()
	if room == nil {
		return nil
	}
	s.orch.Publish(room, s.member, "SERVER: "+s.member.Name()+" has left #"+string(room.Name()))
	return s.orch.Leave(s.member)
}
