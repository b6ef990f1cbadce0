package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	color.Disable()
	bob := domain.Participant{ID: 2, Username: "bob", IsOnline: true}

	t.Run("should list participants", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		renderParticipants(&out, []domain.Participant{bob, {ID: 3, Username: "carol"}})
		req.Contains(out.String(), "bob")
		req.Contains(out.String(), "online")
		req.Contains(out.String(), "offline")
	})

	t.Run("should name the other side of a thread", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		renderThreads(&out, []domain.Thread{{ID: 7, ParticipantID: 2}, {ID: 8, ParticipantID: 9}}, []domain.Participant{bob})
		req.Contains(out.String(), "bob")
		req.Contains(out.String(), "#9")
		req.Contains(out.String(), "chatctl open 2")
	})

	t.Run("should mark own messages", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		renderTimeline(&out, bob, []domain.Message{
			{ID: 1, Content: "hi alice", Timestamp: time.Now()},
			{ID: 2, Content: "hello", Timestamp: time.Now(), IsOwn: true},
		})
		req.Contains(out.String(), "bob: hi alice")
		req.Contains(out.String(), "you: hello")
	})

	t.Run("should describe the session", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		renderSession(&out, domain.Session{
			State:     domain.SessionAuthenticated,
			Principal: &domain.Principal{UserID: 1, Username: "alice"},
		})
		req.Contains(out.String(), "alice (id 1)")
	})
}

func TestParseParticipantID(t *testing.T) {
	req := require.New(t)
	id, err := parseParticipantID(" 42 ")
	req.NoError(err)
	req.Equal(domain.ParticipantID(42), id)

	for _, raw := range []string{"0", "-1", "bob"} {
		_, err = parseParticipantID(raw)
		req.Error(err)
	}
}
