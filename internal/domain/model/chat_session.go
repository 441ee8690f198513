package model

import "time"

type ChatRole string

const (
	ChatRoleUser    ChatRole = "user"
	ChatRoleSupport ChatRole = "support"
)

// ChatSession is a per-user support thread. One open session per user.
type ChatSession struct {
	ID        string
	UserID    string
	Open      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatMessage struct {
	ID        string // ULID, sortable
	SessionID string
	Role      ChatRole
	Text      string
	CreatedAt time.Time
}
