// Package domain contains core concepts of the chat client.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "github.com/samber/lo"

type ParticipantID int64

// Participant is the client-visible view of another user.
// The list is always replaced wholesale, never patched.
type Participant struct {
	ID       ParticipantID
	Username string
	IsOnline bool
}

// FindParticipant looks id up in a participant snapshot.
func FindParticipant(participants []Participant, id ParticipantID) (Participant, bool) {
	return lo.Find(participants, func(p Participant) bool {
		return p.ID == id
	})
}
