package model

import (
	"encoding/json"
	"fmt"
)

// PlayerState is the public view of one player in a running game.
type PlayerState struct {
	Username  string `json:"username"`
	ImageID   int    `json:"imageId"`
	CardCount int    `json:"cardCount"`
}

// GameState is the shared game snapshot. It is replaced wholesale on every
// push; Players is in turn order.
type GameState struct {
	Players            []PlayerState `json:"players"`
	ActivePlayer       string        `json:"activePlayer"`
	CurrentValidColor  string        `json:"currentValidColor"`
	CurrentValidValue  string        `json:"currentValidValue"`
	GameFinished       bool          `json:"gameFinished"`
	RoundCounter       int           `json:"roundCounter"`
	AmountDrawDeck     int           `json:"amountDrawDeck"`
	AmountDiscardDeck  int           `json:"amountDiscardDeck"`
	TopCardDiscardDeck string        `json:"topCardDiscardDeck"`
	GameID             string        `json:"gameId"`
}

// Opponents returns the other players in turn order, starting with the
// player after username. If username is not part of the game the list is
// returned unchanged (spectator view).
func (g GameState) Opponents(username string) []PlayerState {
	idx := -1
	for i, p := range g.Players {
		if p.Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return append([]PlayerState(nil), g.Players...)
	}
	opponents := make([]PlayerState, 0, len(g.Players)-1)
	for i := 1; i < len(g.Players); i++ {
		opponents = append(opponents, g.Players[(idx+i)%len(g.Players)])
	}
	return opponents
}

// TopCard parses the serialized discard pile top card.
func (g GameState) TopCard() (Card, error) {
	return ParseCard(g.TopCardDiscardDeck)
}

// GameStatePush is the envelope the server wraps game state in: the state
// itself arrives as a JSON-encoded string inside a JSON object.
type GameStatePush struct {
	GameStateString string `json:"gameStateString"`
}

// DecodeGameState unwraps the double-encoded game state body. The outer
// object carries a single field whose value is itself JSON; both layers are
// part of the server contract and must be decoded in order.
func DecodeGameState(body []byte) (GameState, error) {
	var push GameStatePush
	if err := json.Unmarshal(body, &push); err != nil {
		return GameState{}, fmt.Errorf("model: decode game state envelope: %w", err)
	}
	return DecodeGameStateString(push.GameStateString)
}

// DecodeGameStateString decodes the inner JSON-encoded game state string.
func DecodeGameStateString(s string) (GameState, error) {
	var state GameState
	if err := json.Unmarshal([]byte(s), &state); err != nil {
		return GameState{}, fmt.Errorf("model: decode game state string: %w", err)
	}
	return state, nil
}

// PersonalChannel identifies the private reply sub-channel of the local
// player within a game.
type PersonalChannel struct {
	GameID    string `json:"gameId"`
	ChannelID int    `json:"channelId"`
}

// InteractionResponse is the result of a command the local player issued,
// delivered on the personal channel only.
type InteractionResponse struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Response   string `json:"response"`
}

// IsHandUpdate reports whether this response carries the player's updated
// hand (status CREATED/201 with a non-empty payload).
func (r InteractionResponse) IsHandUpdate() bool {
	if r.Response == "" {
		return false
	}
	return r.StatusCode == 201 || r.Status == "CREATED"
}
