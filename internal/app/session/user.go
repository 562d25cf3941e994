package session

import (
	"errors"

	"github.com/dkeye/RoomChat/internal/domain"
)

func (s *Session) handleNick(arg string) {
	old, err := s.member.Rename(arg)
	switch {
	case errors.Is(err, domain.ErrUsernameEmpty):
		s.reply("SERVER: Usage: /nick <name>")
		return
	case errors.Is(err, domain.ErrUsernameTooLong):
		s.replyf("SERVER: Name too long (max %d chars).", domain.MaxUsernameLen)
		return
	}

	s.logger.Info().Str("from", old).Str("to", arg).Msg("rename")
	s.reply("SERVER: Name changed to " + arg)
	if room := s.member.Room(); room != nil {
		s.orch.Publish(room, s.member, "SERVER: "+old+" is now known as "+arg)
	}
}
