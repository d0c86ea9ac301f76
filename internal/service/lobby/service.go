// Package lobby runs the lobby bootstrap: fetch the lobby snapshot, connect
// the lobby channel, and mirror the server's pushes into local state. Lobby
// state is always replaced wholesale; the client never patches fields.
package lobby

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

// Channel is the lobby channel adapter.
type Channel interface {
	Connect(lobbyCode string, onState func(model.LobbyState), onGameStart func(gameID string)) error
	PublishSettings(authToken string, state model.LobbyState) error
	PublishReady(authToken, lobbyCode string, member model.LobbyMemberState) error
	PublishStart(authToken, lobbyCode string) error
	PublishKick(lobbyCode, authToken, targetUsername string) error
	PublishPromote(lobbyCode, authToken, targetUsername string) error
	Disconnect()
}

type Service struct {
	api     Snapshots
	channel Channel
	logger  *log.Logger

	mu          sync.Mutex
	joined      bool
	authToken   string
	state       model.LobbyState
	gameID      string
	onState     func(model.LobbyState)
	onGameStart func(gameID string)
}

func New(api Snapshots, channel Channel, logger *log.Logger) *Service {
	return &Service{
		api:     api,
		channel: channel,
		logger:  logger,
	}
}

// SetStateHandler registers an observer for lobby state replacements.
// Set it before Join.
func (s *Service) SetStateHandler(fn func(model.LobbyState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// SetGameStartHandler registers an observer for the game id pushed when the
// host starts a game. Set it before Join.
func (s *Service) SetGameStartHandler(fn func(gameID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onGameStart = fn
}

// Join runs the fetch-then-connect handshake once per service instance.
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

	s.applyState(snapshot)

	if err := s.channel.Connect(snapshot.LobbyCode, s.applyState, s.applyGameStart); err != nil {
		s.reset()
		return err
	}

	s.mu.Lock()
	s.authToken = authToken
	s.mu.Unlock()
	return nil
}

func (s *Service) applyState(state model.LobbyState) {
	s.mu.Lock()
	s.state = state
	fn := s.onState
	s.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

func (s *Service) applyGameStart(gameID string) {
	s.mu.Lock()
	s.gameID = gameID
	fn := s.onGameStart
	s.mu.Unlock()

	s.logger.Printf("lobby: game %s starting", gameID)
	if fn != nil {
		fn(gameID)
	}
}

// State returns the latest lobby state.
func (s *Service) State() model.LobbyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameID returns the started game's id, empty until the start push arrives.
func (s *Service) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// PersonalMember returns the member entry for the given username, recomputed
// against the latest push.
func (s *Service) PersonalMember(username string) (model.LobbyMemberState, bool) {
	return s.State().Member(username)
}

// UpdateSettings publishes the full settings subset of the given state.
func (s *Service) UpdateSettings(state model.LobbyState) error {
	return s.channel.PublishSettings(s.token(), state)
}

// SetReady publishes the member's ready state.
func (s *Service) SetReady(member model.LobbyMemberState) error {
	return s.channel.PublishReady(s.token(), s.State().LobbyCode, member)
}

// StartGame asks the server to start; the game id arrives on the start topic.
func (s *Service) StartGame() error {
	return s.channel.PublishStart(s.token(), s.State().LobbyCode)
}

// Kick removes another player from the lobby (host only).
func (s *Service) Kick(targetUsername string) error {
	return s.channel.PublishKick(s.State().LobbyCode, s.token(), targetUsername)
}

// Promote transfers the host rank to another player (host only).
func (s *Service) Promote(targetUsername string) error {
	return s.channel.PublishPromote(s.State().LobbyCode, s.token(), targetUsername)
}

// Leave disconnects the lobby channel.
func (s *Service) Leave() {
	s.channel.Disconnect()
	s.reset()
	s.logger.Printf("lobby: left lobby")
}

func (s *Service) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authToken
}

func (s *Service) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined = false
	s.authToken = ""
	s.state = model.LobbyState{}
	s.gameID = ""
}
