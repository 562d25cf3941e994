package domain

import (
	"errors"
	"unicode/utf8"
)

const MaxRoomNameLen = 30

var (
	ErrRoomNameEmpty   = errors.New("room name empty")
	ErrRoomNameTooLong = errors.New("room name too long")
)

type RoomName string

func (n RoomName) Validate() error {
	if len(n) == 0 {
		return ErrRoomNameEmpty
	}
	if utf8.RuneCountInString(string(n)) > MaxRoomNameLen {
		return ErrRoomNameTooLong
	}
	return nil
}
