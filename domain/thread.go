package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type ThreadID int64

// Thread is the private conversation between the current user and one participant.
// Uniqueness of the pair is enforced by the service.
type Thread struct {
	ID            ThreadID
	ParticipantID ParticipantID
}

const chatPathPrefix = "/chat/"

// LoginPath is the address of the login surface.
const LoginPath = "/login"

// ChatPath returns the canonical address of the conversation with a participant.
func ChatPath(id ParticipantID) string {
	return fmt.Sprintf("%s%d", chatPathPrefix, id)
}

// ParseChatPath extracts the participant id from a /chat/{id} address.
func ParseChatPath(path string) (ParticipantID, bool) {
	raw, ok := strings.CutPrefix(path, chatPathPrefix)
	if !ok {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return ParticipantID(id), true
}
