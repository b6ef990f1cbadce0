//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ngongtopro/love-story-chat/client"
	"github.com/ngongtopro/love-story-chat/contract"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/ngongtopro/love-story-chat/projection"
)

const (
	OpenFailedMessage = "Could not load the conversation"
	SendFailedMessage = "Could not send the message"
)

type IChatService interface {
	contract.Worker
	Open(ctx context.Context, participantID domain.ParticipantID) error
	OpenFromAddress(ctx context.Context, address string) error
	Send(ctx context.Context, text string) (domain.Message, error)
	Participants(ctx context.Context) ([]domain.Participant, error)
	ReloadParticipants(ctx context.Context) ([]domain.Participant, error)
	Threads(ctx context.Context) ([]domain.Thread, error)
	Messages() []domain.Message
	ActiveThread() (domain.Thread, bool)
	SelectedParticipant() (domain.Participant, bool)
	Reset()
}

type pendingSend struct {
	threadID domain.ThreadID
	content  string
}

// ChatService keeps "which conversation is on screen" consistent with the
// navigable address. The mutex guards in-memory state only and is never held
// across a remote call.
type ChatService struct {
	api       client.IChatAPI
	navigator contract.Navigator
	session   contract.SessionReader
	log       *slog.Logger

	mu           sync.Mutex
	participants []domain.Participant
	loaded       bool
	selected     *domain.Participant
	thread       *domain.Thread
	timeline     *projection.Timeline
	generation   uint64
	pending      map[pendingSend]struct{}
}

func NewChatService(api client.IChatAPI, navigator contract.Navigator,
	session contract.SessionReader, log *slog.Logger,
) *ChatService {
	return &ChatService{
		api:       api,
		navigator: navigator,
		session:   session,
		log:       log,
		timeline:  projection.NewTimeline(),
		pending:   make(map[pendingSend]struct{}),
	}
}

// Open makes participantID the active conversation:
//  1. resolve the participant, reloading the list once if it is unknown
//  2. create-or-fetch the thread
//  3. replace the timeline with its history
//  4. move the address to /chat/{id}
//
// Nothing is committed unless steps 1 to 3 succeed. When a later Open starts
// before this one commits, this one is discarded. A failed Open gives its
// generation back, so it never discards an earlier one still loading.
func (s *ChatService) Open(ctx context.Context, participantID domain.ParticipantID) error {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	participant, err := s.resolveParticipant(ctx, participantID)
	if err != nil {
		s.abandon(generation)
		return err
	}

	thread, err := s.api.CreateThread(ctx, participantID)
	if err != nil {
		s.abandon(generation)
		s.log.Info("Cannot open conversation", "participant", participantID, "error", err)
		return errors.NewFailure(err, OpenFailedMessage)
	}
	history, err := s.api.ListMessages(ctx, thread.ID)
	if err != nil {
		s.abandon(generation)
		s.log.Info("Cannot load history", "thread", thread.ID, "error", err)
		return errors.NewFailure(err, OpenFailedMessage)
	}

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		s.log.Debug("Conversation superseded before it loaded", "participant", participantID)
		return nil
	}
	s.selected = &participant
	s.thread = &thread
	s.timeline.Replace(thread.ID, history)
	s.mu.Unlock()

	if path := domain.ChatPath(participantID); s.navigator.Current() != path {
		s.navigator.Navigate(path)
	}
	s.log.Debug("Conversation opened", "participant", participantID, "thread", thread.ID, "messages", len(history))
	return nil
}

// abandon undoes the generation bump of a failed Open unless a newer Open or
// a Reset happened since.
func (s *ChatService) abandon(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == generation {
		s.generation--
	}
}

// resolveParticipant never looks at a snapshot taken before its own reload.
func (s *ChatService) resolveParticipant(ctx context.Context, id domain.ParticipantID) (domain.Participant, error) {
	s.mu.Lock()
	cached, loaded := s.snapshotLocked()
	s.mu.Unlock()

	if loaded {
		if participant, ok := domain.FindParticipant(cached, id); ok {
			return participant, nil
		}
	}

	reloaded, err := s.ReloadParticipants(ctx)
	if err != nil {
		return domain.Participant{}, err
	}
	if participant, ok := domain.FindParticipant(reloaded, id); ok {
		return participant, nil
	}
	s.log.Info("Participant not found", "participant", id)
	return domain.Participant{}, fmt.Errorf("%w: %d", errors.ErrParticipantNotFound, id)
}

// OpenFromAddress follows an externally changed address. Addresses other
// than /chat/{id}, and the conversation already on screen, are ignored.
func (s *ChatService) OpenFromAddress(ctx context.Context, address string) error {
	id, ok := domain.ParseChatPath(address)
	if !ok {
		return nil
	}
	if selected, ok := s.SelectedParticipant(); ok && selected.ID == id {
		return nil
	}
	return s.Open(ctx, id)
}

// Send posts text to the active conversation and appends the message the
// service returns. Completion order, not call order, decides the position of
// concurrent sends.
func (s *ChatService) Send(ctx context.Context, text string) (domain.Message, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return domain.Message{}, errors.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.thread == nil {
		s.mu.Unlock()
		return domain.Message{}, errors.ErrNoActiveThread
	}
	key := pendingSend{threadID: s.thread.ID, content: content}
	if _, inFlight := s.pending[key]; inFlight {
		s.mu.Unlock()
		return domain.Message{}, errors.ErrDuplicateSend
	}
	s.pending[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
	}()

	message, err := s.api.SendMessage(ctx, key.threadID, content)
	if err != nil {
		s.log.Info("Message not sent", "thread", key.threadID, "error", err)
		return domain.Message{}, errors.NewFailure(err, SendFailedMessage)
	}

	s.mu.Lock()
	if !s.timeline.Append(message) {
		s.log.Debug("Sent message not shown, conversation changed", "thread", key.threadID, "message", message.ID)
	}
	s.mu.Unlock()
	return message, nil
}

// Participants returns the cached list, loading it on first use.
func (s *ChatService) Participants(ctx context.Context) ([]domain.Participant, error) {
	s.mu.Lock()
	cached, loaded := s.snapshotLocked()
	s.mu.Unlock()
	if loaded {
		return cached, nil
	}
	return s.ReloadParticipants(ctx)
}

// ReloadParticipants replaces the cached list wholesale.
func (s *ChatService) ReloadParticipants(ctx context.Context) ([]domain.Participant, error) {
	participants, err := s.api.ListParticipants(ctx)
	if err != nil {
		return nil, errors.NewFailure(err, "Could not load users")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = participants
	s.loaded = true
	cached, _ := s.snapshotLocked()
	return cached, nil
}

func (s *ChatService) Threads(ctx context.Context) ([]domain.Thread, error) {
	threads, err := s.api.ListThreads(ctx)
	if err != nil {
		return nil, errors.NewFailure(err, "Could not load conversations")
	}
	return threads, nil
}

func (s *ChatService) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thread == nil {
		return nil
	}
	return s.timeline.Snapshot()
}

func (s *ChatService) ActiveThread() (domain.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thread == nil {
		return domain.Thread{}, false
	}
	return *s.thread, true
}

func (s *ChatService) SelectedParticipant() (domain.Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return domain.Participant{}, false
	}
	return *s.selected, true
}

// Reset forgets everything, including conversations still loading.
func (s *ChatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.participants = nil
	s.loaded = false
	s.selected = nil
	s.thread = nil
	s.timeline.Reset()
}

// Run follows the address and the session until ctx is cancelled: a /chat/{id}
// address opens that conversation, signing out wipes the cache.
func (s *ChatService) Run(ctx context.Context) error {
	addresses, stopAddresses := s.navigator.Subscribe()
	defer stopAddresses()
	sessions, stopSessions := s.session.Subscribe()
	defer stopSessions()

	s.follow(ctx, s.navigator.Current())

	for {
		select {
		case <-ctx.Done():
			return nil
		case address, ok := <-addresses:
			if !ok {
				return nil
			}
			s.follow(ctx, address)
		case session, ok := <-sessions:
			if !ok {
				return nil
			}
			if session.State == domain.SessionAnonymous {
				s.Reset()
			}
		}
	}
}

func (s *ChatService) follow(ctx context.Context, address string) {
	if !s.session.Current().IsAuthenticated() {
		return
	}
	if err := s.OpenFromAddress(ctx, address); err != nil {
		s.log.Warn("Cannot follow address", "address", address, "error", err)
	}
}

func (s *ChatService) snapshotLocked() ([]domain.Participant, bool) {
	return append([]domain.Participant(nil), s.participants...), s.loaded
}
