package domain

import (
	"time"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single conversation turn. Once appended to a store it is
// immutable except for the translation field, which is populated lazily by
// the translation overlay.
type Message struct {
	ID          string
	Sender      Sender
	Text        string
	Image       string // data URI, set only on user messages with an attachment
	Translation string
	CreatedAt   time.Time
}

func (m *Message) HasTranslation() bool {
	return m.Translation != ""
}

// Turn is one (role, text) pair of the history payload handed to the
// generation backend. Roles follow the backend's convention: "user" for
// user turns and "model" for bot turns. Translations never appear here.
type Turn struct {
	Role string
	Text string
}

// Role maps a sender to its backend history role.
func (s Sender) Role() string {
	if s == SenderBot {
		return "model"
	}
	return "user"
}
