package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnOrder(usernames ...string) []PlayerState {
	players := make([]PlayerState, 0, len(usernames))
	for _, name := range usernames {
		players = append(players, PlayerState{Username: name, CardCount: 5})
	}
	return players
}

func TestOpponentsRotatesAtLocalPlayer(t *testing.T) {
	state := GameState{Players: turnOrder("alice", "bob", "carol", "dave")}

	opponents := state.Opponents("carol")

	names := make([]string, 0, len(opponents))
	for _, p := range opponents {
		names = append(names, p.Username)
	}
	assert.Equal(t, []string{"dave", "alice", "bob"}, names)
}

func TestOpponentsUnknownPlayerKeepsOrder(t *testing.T) {
	state := GameState{Players: turnOrder("alice", "bob")}

	opponents := state.Opponents("mallory")

	require.Len(t, opponents, 2)
	assert.Equal(t, "alice", opponents[0].Username)
	assert.Equal(t, "bob", opponents[1].Username)
}

func TestDecodeGameStateDoubleDecodes(t *testing.T) {
	inner, err := json.Marshal(GameState{
		ActivePlayer:       "bob",
		RoundCounter:       3,
		TopCardDiscardDeck: "D:9",
		GameID:             "G1",
	})
	require.NoError(t, err)
	body, err := json.Marshal(GameStatePush{GameStateString: string(inner)})
	require.NoError(t, err)

	state, err := DecodeGameState(body)
	require.NoError(t, err)
	assert.Equal(t, "bob", state.ActivePlayer)
	assert.Equal(t, 3, state.RoundCounter)
	assert.Equal(t, "G1", state.GameID)

	top, err := state.TopCard()
	require.NoError(t, err)
	assert.Equal(t, Card{Suit: SuitDiamonds, Value: ValueNine}, top)
}

func TestDecodeGameStateRejectsSingleEncoding(t *testing.T) {
	// A bare game state object is not the wire form; the envelope is required.
	body, err := json.Marshal(GameState{ActivePlayer: "bob"})
	require.NoError(t, err)

	_, err = DecodeGameState(body)
	assert.Error(t, err)
}

func TestIsHandUpdate(t *testing.T) {
	assert.True(t, InteractionResponse{StatusCode: 201, Status: "CREATED", Response: "C:7"}.IsHandUpdate())
	assert.True(t, InteractionResponse{Status: "CREATED", Response: "C:7"}.IsHandUpdate())
	assert.True(t, InteractionResponse{StatusCode: 201, Response: "C:7"}.IsHandUpdate())
	assert.False(t, InteractionResponse{StatusCode: 201, Status: "CREATED"}.IsHandUpdate())
	assert.False(t, InteractionResponse{StatusCode: 400, Status: "BAD_REQUEST", Response: "nope"}.IsHandUpdate())
}
