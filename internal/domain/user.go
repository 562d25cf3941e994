// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"unicode/utf8"
)

const MaxUsernameLen = 20

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type UserID string

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// GuestName returns a default display name in the form Guest_1000..Guest_9999.
func GuestName() string {
	return fmt.Sprintf("Guest_%d", 1000+rand.IntN(9000))
}

// ValidateUsername checks a display name against the 1..MaxUsernameLen rule.
// Length is counted in code points.
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(id UserID, username string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username}, nil
}

func (u *User) SetUsername(username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	u.Username = username
	return nil
}
