// Package chat runs the chatroom bootstrap: fetch the lobby snapshot to learn
// the chatroom id (the lobby code), open the chat channel and announce the
// join, then keep the append-only message log up to date from pushes.
package chat

import (
	"context"
	"log"
	"sync"

	"maumau-client/internal/model"
)

// Snapshots is the slice of the REST client this service needs.
type Snapshots interface {
	LobbySnapshot(ctx context.Context, authToken string) (model.LobbyState, error)
}

// Channel is the chat channel adapter.
type Channel interface {
	Connect(chatroomID string, onMessage func(model.ChatMessage)) error
	AnnounceJoin(chatroomID, authToken string) error
	Send(authToken, content, chatroomID string) error
	Disconnect()
}

type Service struct {
	api     Snapshots
	channel Channel
	logger  *log.Logger

	mu         sync.Mutex
	joined     bool
	chatroomID string
	authToken  string
	messages   []model.ChatMessage
	onMessage  func(model.ChatMessage)
}

func New(api Snapshots, channel Channel, logger *log.Logger) *Service {
	return &Service{
		api:     api,
		channel: channel,
		logger:  logger,
	}
}

// SetMessageHandler registers an observer invoked after each message is
// appended to the log. Set it before Join.
func (s *Service) SetMessageHandler(fn func(model.ChatMessage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMessage = fn
}

// Join runs the fetch-then-connect handshake once per service instance.
// Repeat calls while joined are no-ops, so reactive callers cannot retrigger
// the network handshake. A failed join resets the guard.
func (s *Service) Join(ctx context.Context, authToken string) error {
	s.mu.Lock()
	if s.joined {
		s.mu.Unlock()
		return nil
	}
	s.joined = true
	s.mu.Unlock()

	snapshot, err := s.api.LobbySnapshot(ctx, authToken)
	if err != nil {
		s.reset()
		return err
	}

	chatroomID := snapshot.LobbyCode
	if err := s.channel.Connect(chatroomID, s.append); err != nil {
		s.reset()
		return err
	}
	if err := s.channel.AnnounceJoin(chatroomID, authToken); err != nil {
		s.channel.Disconnect()
		s.reset()
		return err
	}

	s.mu.Lock()
	s.chatroomID = chatroomID
	s.authToken = authToken
	s.mu.Unlock()
	return nil
}

// append adds one pushed message to the log. The server's send order is
// authoritative; nothing is reordered or deduplicated here.
func (s *Service) append(msg model.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	fn := s.onMessage
	s.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

// Send publishes a chat message to the joined chatroom.
func (s *Service) Send(content string) error {
	s.mu.Lock()
	chatroomID, authToken := s.chatroomID, s.authToken
	s.mu.Unlock()
	return s.channel.Send(authToken, content, chatroomID)
}

// Messages returns a copy of the chat log in arrival order.
func (s *Service) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.messages...)
}

func (s *Service) ChatroomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatroomID
}

// Leave disconnects the channel and discards the log. The log is not
// persisted across chatroom memberships.
func (s *Service) Leave() {
	s.channel.Disconnect()
	s.reset()
	s.logger.Printf("chat: left chatroom")
}

func (s *Service) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined = false
	s.chatroomID = ""
	s.authToken = ""
	s.messages = nil
}
