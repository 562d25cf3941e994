package session

const timeLayout = "15:04:05"

// handleMessage fans the chat line out to the room and echoes the very same
// string back to the sender.
func (s *Session) handleMessage(text string) {
	room := s.member.Room()
	if room == nil {
		s.reply("SERVER: Join a room first with /join <room>.")
		return
	}
	line := "[" + s.now().Format(timeLayout) + "] " + s.member.Name() + ": " + text
	s.orch.Publish(room, s.member, line)
	s.reply(line)
}
