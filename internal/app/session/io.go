package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

var banner = []string{
	"SERVER: Welcome to RoomChat! Commands:",
	"SERVER:   /nick <name>  - set your display name",
	"SERVER:   /join <room>  - join or create a room",
	"SERVER:   /leave        - leave current room",
	"SERVER:   /rooms        - list all rooms",
	"SERVER:   /who          - list room members",
	"SERVER:   /quit         - disconnect",
}

func (s *Session) serve(ctx context.Context) error {
	for _, line := range banner {
		s.reply(line)
	}
	s.reply("SERVER: Your temporary name is: " + s.member.Name())

	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info().Msg("session canceled")
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Warn().Err(err).Msg("read error")
			return err
		}
		if !s.handleLine(strings.TrimSpace(line)) {
			return nil
		}
	}
}

// handleLine reports false once the session should end.
func (s *Session) handleLine(line string) bool {
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, "/") {
		s.handleMessage(line)
		return true
	}

	cmd, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i:])
	}

	switch cmd {
	case "/nick":
		s.handleNick(arg)
	case "/join":
		s.handleJoin(arg)
	case "/leave":
		s.handleLeave()
	case "/rooms":
		s.handleRooms()
	case "/who":
		s.handleWho()
	case "/quit":
		s.reply("SERVER: Goodbye, " + s.member.Name() + "!")
		return false
	default:
		s.logger.Debug().Str("cmd", cmd).Msg("unknown command")
		s.reply("SERVER: Unknown command. Type /quit to exit.")
	}
	return true
}

func (s *Session) reply(line string) {
	if err := s.member.Send(line); err != nil {
		s.logger.Debug().Err(err).Msg("reply dropped")
	}
}

func (s *Session) replyf(format string, args ...any) {
	s.reply(fmt.Sprintf(format, args...))
}
