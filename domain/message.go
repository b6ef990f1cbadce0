// Package domain contains core concepts of the chat client.
// This file defines Message events and related rules.
// Messages are immutable once confirmed by the service.
package domain

import "time"

type MessageID int64

// Message represents a server-confirmed chat message.
type Message struct {
	ID        MessageID
	ThreadID  ThreadID
	SenderID  ParticipantID
	Content   string
	Timestamp time.Time
	IsOwn     bool
}
