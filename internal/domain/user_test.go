package domain

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrUsernameEmpty},
		{"one char", "a", nil},
		{"twenty chars", strings.Repeat("x", 20), nil},
		{"twenty one chars", strings.Repeat("x", 21), ErrUsernameTooLong},
		{"twenty runes multibyte", strings.Repeat("ж", 20), nil},
		{"twenty one runes multibyte", strings.Repeat("ж", 21), ErrUsernameTooLong},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := ValidateUsername(c.in); !errors.Is(err, c.want) {
				t.Fatalf("ValidateUsername(%q) = %v, want %v", c.in, err, c.want)
			}
		})
	}
}

func TestUser_SetUsernameKeepsOldOnError(t *testing.T) {
	u, err := NewUser("id-1", "alice")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := u.SetUsername(strings.Repeat("b", 21)); !errors.Is(err, ErrUsernameTooLong) {
		t.Fatalf("SetUsername error = %v, want %v", err, ErrUsernameTooLong)
	}
	if u.Username != "alice" {
		t.Fatalf("username changed to %q after rejected rename", u.Username)
	}
	if err := u.SetUsername(strings.Repeat("b", 20)); err != nil {
		t.Fatalf("SetUsername 20 chars: %v", err)
	}
}

func TestGuestName(t *testing.T) {
	re := regexp.MustCompile(`^Guest_[1-9][0-9]{3}$`)
	for range 100 {
		n := GuestName()
		if !re.MatchString(n) {
			t.Fatalf("GuestName() = %q", n)
		}
		if err := ValidateUsername(n); err != nil {
			t.Fatalf("GuestName() %q is not a valid username: %v", n, err)
		}
	}
}

func TestRoomName_Validate(t *testing.T) {
	cases := []struct {
		in   RoomName
		want error
	}{
		{"", ErrRoomNameEmpty},
		{"lobby", nil},
		{RoomName(strings.Repeat("r", 30)), nil},
		{RoomName(strings.Repeat("r", 31)), ErrRoomNameTooLong},
	}
	for _, c := range cases {
		if err := c.in.Validate(); !errors.Is(err, c.want) {
			t.Errorf("RoomName(%q).Validate() = %v, want %v", c.in, err, c.want)
		}
	}
}
