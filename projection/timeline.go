// Package projection builds the local view of the active conversation.
// Handles ordering and deduplication of server-confirmed messages.
// Does not talk to the network or the UI directly.
package projection

import (
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/samber/lo"
)

// Timeline holds the messages of one thread in arrival order.
// It is not safe for concurrent use; its owner serialises access.
type Timeline struct {
	ThreadID domain.ThreadID
	Messages []domain.Message
}

func NewTimeline() *Timeline {
	return &Timeline{
		Messages: nil,
	}
}

// Replace discards everything and starts over with the history of threadID.
func (t *Timeline) Replace(threadID domain.ThreadID, history []domain.Message) {
	t.ThreadID = threadID
	t.Messages = append([]domain.Message(nil), history...)
}

// Append adds a confirmed message at the end. Messages for another thread, or
// already present, are ignored and Append reports false.
func (t *Timeline) Append(message domain.Message) bool {
	if message.ThreadID != t.ThreadID {
		return false
	}
	if lo.ContainsBy(t.Messages, func(m domain.Message) bool { return m.ID == message.ID }) {
		return false
	}
	t.Messages = append(t.Messages, message)
	return true
}

// Snapshot returns a copy callers may keep.
func (t *Timeline) Snapshot() []domain.Message {
	return append([]domain.Message(nil), t.Messages...)
}

func (t *Timeline) Reset() {
	t.ThreadID = 0
	t.Messages = nil
}
