package entity

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by stores when no subscriber matches.
	ErrNotFound = errors.New("subscriber not found")
	// ErrEmailTaken is returned by stores when the email is already registered.
	ErrEmailTaken = errors.New("subscriber email already registered")
)

type Subscriber struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
