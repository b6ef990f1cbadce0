//go:generate go run go.uber.org/mock/mockgen -source=api.go -destination=../mocks/mock_api.go -package=mocks
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ngongtopro/love-story-chat/contract"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/samber/lo"
)

const (
	loginPath    = "/api/auth/token/"
	registerPath = "/api/auth/register/"
	verifyPath   = "/api/auth/token/verify/"
	usersPath    = "/users/"
	chatsPath    = "/chats/"
)

type IAuthAPI interface {
	Login(ctx context.Context, username, password string) (domain.CredentialPair, error)
	Register(ctx context.Context, input RegisterRequest) error
	Verify(ctx context.Context, accessToken string) error
}

type IChatAPI interface {
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	ListThreads(ctx context.Context) ([]domain.Thread, error)
	CreateThread(ctx context.Context, participantID domain.ParticipantID) (domain.Thread, error)
	ListMessages(ctx context.Context, threadID domain.ThreadID) ([]domain.Message, error)
	SendMessage(ctx context.Context, threadID domain.ThreadID, content string) (domain.Message, error)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthAPI wraps the token endpoints. All of them are public calls.
type AuthAPI struct {
	pipeline *Pipeline
}

func NewAuthAPI(pipeline *Pipeline) *AuthAPI {
	return &AuthAPI{pipeline: pipeline}
}

func (a *AuthAPI) Login(ctx context.Context, username, password string) (domain.CredentialPair, error) {
	resp, err := a.pipeline.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   map[string]string{"username": username, "password": password},
		Public: true,
	})
	if err != nil {
		return domain.CredentialPair{}, err
	}
	var pair domain.CredentialPair
	if err = resp.Decode(&pair); err != nil {
		return domain.CredentialPair{}, err
	}
	return pair, nil
}

func (a *AuthAPI) Register(ctx context.Context, input RegisterRequest) error {
	_, err := a.pipeline.Do(ctx, Call{Method: http.MethodPost, Path: registerPath, Body: input, Public: true})
	return err
}

func (a *AuthAPI) Verify(ctx context.Context, accessToken string) error {
	_, err := a.pipeline.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   verifyPath,
		Body:   map[string]string{"token": accessToken},
		Public: true,
	})
	return err
}

// ChatAPI wraps the conversation endpoints. The session is used to tell which
// side of a thread or message is the current user.
type ChatAPI struct {
	pipeline *Pipeline
	session  contract.SessionReader
}

func NewChatAPI(pipeline *Pipeline, session contract.SessionReader) *ChatAPI {
	return &ChatAPI{pipeline: pipeline, session: session}
}

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsOnline bool   `json:"is_online"`
}

type threadDTO struct {
	ID    int64    `json:"id"`
	User1 *userDTO `json:"user1"`
	User2 *userDTO `json:"user2"`
}

type messageDTO struct {
	ID           int64     `json:"id"`
	Chat         int64     `json:"chat"`
	Sender       *userDTO  `json:"sender"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	IsOwnMessage *bool     `json:"is_own_message"`
}

func (c *ChatAPI) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	var users []userDTO
	if err := c.get(ctx, usersPath, &users); err != nil {
		return nil, err
	}
	return lo.Map(users, func(u userDTO, _ int) domain.Participant {
		return domain.Participant{ID: domain.ParticipantID(u.ID), Username: u.Username, IsOnline: u.IsOnline}
	}), nil
}

func (c *ChatAPI) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	var threads []threadDTO
	if err := c.get(ctx, chatsPath, &threads); err != nil {
		return nil, err
	}
	self := c.self()
	return lo.Map(threads, func(t threadDTO, _ int) domain.Thread {
		return toThread(t, self, 0)
	}), nil
}

// CreateThread is create-or-fetch: asking twice for the same participant
// returns the same thread.
func (c *ChatAPI) CreateThread(ctx context.Context, participantID domain.ParticipantID) (domain.Thread, error) {
	resp, err := c.pipeline.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   chatsPath,
		Body:   map[string]int64{"other_user_id": int64(participantID)},
	})
	if err != nil {
		return domain.Thread{}, err
	}
	var thread threadDTO
	if err = resp.Decode(&thread); err != nil {
		return domain.Thread{}, err
	}
	return toThread(thread, c.self(), participantID), nil
}

func (c *ChatAPI) ListMessages(ctx context.Context, threadID domain.ThreadID) ([]domain.Message, error) {
	var messages []messageDTO
	if err := c.get(ctx, fmt.Sprintf("%s%d/messages/", chatsPath, threadID), &messages); err != nil {
		return nil, err
	}
	self := c.self()
	return lo.Map(messages, func(m messageDTO, _ int) domain.Message {
		return toMessage(m, threadID, self)
	}), nil
}

func (c *ChatAPI) SendMessage(ctx context.Context, threadID domain.ThreadID, content string) (domain.Message, error) {
	resp, err := c.pipeline.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s%d/send_message/", chatsPath, threadID),
		Body:   map[string]string{"content": content},
	})
	if err != nil {
		return domain.Message{}, err
	}
	var message messageDTO
	if err = resp.Decode(&message); err != nil {
		return domain.Message{}, err
	}
	return toMessage(message, threadID, c.self()), nil
}

func (c *ChatAPI) get(ctx context.Context, path string, v any) error {
	resp, err := c.pipeline.Do(ctx, Call{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	return resp.Decode(v)
}

func (c *ChatAPI) self() domain.ParticipantID {
	if principal := c.session.Current().Principal; principal != nil {
		return principal.UserID
	}
	return 0
}

// toThread picks the side of the thread that is not the current user. When the
// current user id is unknown, fallback is used.
func toThread(t threadDTO, self, fallback domain.ParticipantID) domain.Thread {
	thread := domain.Thread{ID: domain.ThreadID(t.ID), ParticipantID: fallback}
	if self == 0 || t.User1 == nil || t.User2 == nil {
		return thread
	}
	switch self {
	case domain.ParticipantID(t.User1.ID):
		thread.ParticipantID = domain.ParticipantID(t.User2.ID)
	case domain.ParticipantID(t.User2.ID):
		thread.ParticipantID = domain.ParticipantID(t.User1.ID)
	}
	return thread
}

func toMessage(m messageDTO, threadID domain.ThreadID, self domain.ParticipantID) domain.Message {
	message := domain.Message{
		ID:        domain.MessageID(m.ID),
		ThreadID:  threadID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Chat != 0 {
		message.ThreadID = domain.ThreadID(m.Chat)
	}
	if m.Sender != nil {
		message.SenderID = domain.ParticipantID(m.Sender.ID)
	}
	switch {
	case m.IsOwnMessage != nil:
		message.IsOwn = *m.IsOwnMessage
	case self != 0:
		message.IsOwn = message.SenderID == self
	}
	return message
}
