package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatPath_RoundTrip(t *testing.T) {
	req := require.New(t)

	path := ChatPath(7)
	req.Equal("/chat/7", path)

	id, ok := ParseChatPath(path)
	req.True(ok)
	req.Equal(ParticipantID(7), id)
}

func TestParseChatPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want ParticipantID
		ok   bool
	}{
		{"trailing slash", "/chat/12/", 12, true},
		{"login surface", "/login", 0, false},
		{"chat index", "/chat/", 0, false},
		{"not a number", "/chat/bob", 0, false},
		{"negative id", "/chat/-3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			id, ok := ParseChatPath(tt.path)
			req.Equal(tt.ok, ok)
			req.Equal(tt.want, id)
		})
	}
}

func TestFindParticipant(t *testing.T) {
	req := require.New(t)
	participants := []Participant{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob", IsOnline: true}}

	p, ok := FindParticipant(participants, 2)
	req.True(ok)
	req.Equal("bob", p.Username)

	_, ok = FindParticipant(participants, 3)
	req.False(ok)
}
