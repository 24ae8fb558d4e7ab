package domain

import (
	"errors"
	"time"
)

var ErrEmptyText = errors.New("text must not be empty")

// Note is a private research note. Owned by exactly one identity and only
// reachable through the admin-gated notes API.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a public message on the home page. The author username is
// denormalized at creation time so listings need no identity lookup.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
