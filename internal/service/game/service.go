// Package game runs the game bootstrap: fetch the game snapshot and the
// personal channel routing pair, connect the game channel, then request the
// opening hand. Shared game state is replaced wholesale on every push; the
// personal hand only changes through interaction responses on the private
// topic. The two streams carry no relative ordering guarantee, so neither
// update assumes the other has happened.
package game

import (
	"context"
	"log"
	"sync"

	"maumau-client/internal/channel"
	"maumau-client/internal/model"
)

// Snapshots is the slice of the REST client this service needs.
type Snapshots interface {
	GameSnapshot(ctx context.Context, authToken string) (model.GameState, error)
	PersonalChannel(ctx context.Context, authToken string) (model.PersonalChannel, error)
}

// Channel is the game channel adapter.
type Channel interface {
	Connect(gameID string, personalChannelID int, onState func(model.GameState), onInteraction func(model.InteractionResponse)) error
	Interact(authToken, gameID string, cmd channel.Command, card *model.Card, chosenSuit model.CardSuit) error
	Disconnect()
}

type Service struct {
	api     Snapshots
	channel Channel
	logger  *log.Logger

	mu            sync.Mutex
	joined        bool
	authToken     string
	gameID        string
	state         model.GameState
	hand          []model.Card
	onState       func(model.GameState)
	onInteraction func(model.InteractionResponse)
}

func New(api Snapshots, channel Channel, logger *log.Logger) *Service {
	return &Service{
		api:     api,
		channel: channel,
		logger:  logger,
	}
}

// SetStateHandler registers an observer for game state replacements.
// Set it before Join.
func (s *Service) SetStateHandler(fn func(model.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// SetInteractionHandler registers an observer invoked for every private-topic
// push, after hand reconciliation. Set it before Join.
func (s *Service) SetInteractionHandler(fn func(model.InteractionResponse)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInteraction = fn
}

// Join runs the fetch-then-connect handshake once per service instance:
// game snapshot, personal channel pair, connect, then an immediate getHand
// so the opening hand arrives on the private topic.
func (s *Service) Join(ctx context.Context, authToken string) error {
	s.mu.Lock()
	if s.joined {
		s.mu.Unlock()
		return nil
	}
	s.joined = true
	s.mu.Unlock()

	snapshot, err := s.api.GameSnapshot(ctx, authToken)
	if err != nil {
		s.reset()
		return err
	}

	personal, err := s.api.PersonalChannel(ctx, authToken)
	if err != nil {
		s.reset()
		return err
	}

	s.applyState(snapshot)

	if err := s.channel.Connect(personal.GameID, personal.ChannelID, s.applyState, s.applyInteraction); err != nil {
		s.reset()
		return err
	}

	s.mu.Lock()
	s.authToken = authToken
	s.gameID = personal.GameID
	s.mu.Unlock()

	if err := s.channel.Interact(authToken, personal.GameID, channel.CommandGetHand, nil, ""); err != nil {
		s.channel.Disconnect()
		s.reset()
		return err
	}
	return nil
}

func (s *Service) applyState(state model.GameState) {
	s.mu.Lock()
	s.state = state
	fn := s.onState
	s.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

// applyInteraction reconciles one private-topic push. A CREATED/201 response
// with a payload replaces the hand; everything else is forwarded untouched.
func (s *Service) applyInteraction(resp model.InteractionResponse) {
	if resp.IsHandUpdate() {
		hand, err := model.ParseHand(resp.Response)
		if err != nil {
			s.logger.Printf("game: dropping unparsable hand %q: %v", resp.Response, err)
		} else {
			s.mu.Lock()
			s.hand = hand
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	fn := s.onInteraction
	s.mu.Unlock()
	if fn != nil {
		fn(resp)
	}
}

// State returns the latest shared game state.
func (s *Service) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hand returns a copy of the local player's hand.
func (s *Service) Hand() []model.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Card(nil), s.hand...)
}

func (s *Service) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// Opponents lists the other players in turn order, starting after username.
func (s *Service) Opponents(username string) []model.PlayerState {
	return s.State().Opponents(username)
}

// RequestHand re-requests the hand on the private topic.
func (s *Service) RequestHand() error {
	return s.interact(channel.CommandGetHand, nil, "")
}

// Discard plays a card onto the discard pile.
func (s *Service) Discard(card model.Card) error {
	return s.interact(channel.CommandDiscard, &card, "")
}

// Draw takes one card from the draw pile.
func (s *Service) Draw() error {
	return s.interact(channel.CommandDrawFromPile, nil, "")
}

// Pass skips the turn.
func (s *Service) Pass() error {
	return s.interact(channel.CommandPass, nil, "")
}

// Play plays a jack and names the suit that must follow.
func (s *Service) Play(card model.Card, chosenSuit model.CardSuit) error {
	return s.interact(channel.CommandPlay, &card, chosenSuit)
}

func (s *Service) interact(cmd channel.Command, card *model.Card, chosenSuit model.CardSuit) error {
	s.mu.Lock()
	authToken, gameID := s.authToken, s.gameID
	s.mu.Unlock()
	return s.channel.Interact(authToken, gameID, cmd, card, chosenSuit)
}

// Leave disconnects the game channel.
func (s *Service) Leave() {
	s.channel.Disconnect()
	s.reset()
	s.logger.Printf("game: left game")
}

func (s *Service) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joined = false
	s.authToken = ""
	s.gameID = ""
	s.state = model.GameState{}
	s.hand = nil
}
