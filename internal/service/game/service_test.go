package game

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maumau-client/internal/channel"
	"maumau-client/internal/model"
)

type fakeSnapshots struct {
	mu       sync.Mutex
	state    model.GameState
	personal model.PersonalChannel
	stateErr error
	fetches  []string
}

func (f *fakeSnapshots) GameSnapshot(ctx context.Context, authToken string) (model.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, "state")
	return f.state, f.stateErr
}

func (f *fakeSnapshots) PersonalChannel(ctx context.Context, authToken string) (model.PersonalChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, "channel")
	return f.personal, nil
}

type interaction struct {
	authToken string
	gameID    string
	cmd       channel.Command
	card      *model.Card
	suit      model.CardSuit
}

type fakeChannel struct {
	mu            sync.Mutex
	connected     bool
	gameID        string
	channelID     int
	onState       func(model.GameState)
	onInteraction func(model.InteractionResponse)
	interactions  []interaction
	interactErr   error
}

func (f *fakeChannel) Connect(gameID string, personalChannelID int, onState func(model.GameState), onInteraction func(model.InteractionResponse)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	f.gameID = gameID
	f.channelID = personalChannelID
	f.onState = onState
	f.onInteraction = onInteraction
	return nil
}

func (f *fakeChannel) Interact(authToken, gameID string, cmd channel.Command, card *model.Card, chosenSuit model.CardSuit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.interactErr != nil {
		return f.interactErr
	}
	f.interactions = append(f.interactions, interaction{authToken, gameID, cmd, card, chosenSuit})
	return nil
}

func (f *fakeChannel) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	f.onState = nil
	f.onInteraction = nil
}

func (f *fakeChannel) pushState(state model.GameState) {
	f.mu.Lock()
	fn := f.onState
	f.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

func (f *fakeChannel) pushInteraction(resp model.InteractionResponse) {
	f.mu.Lock()
	fn := f.onInteraction
	f.mu.Unlock()
	if fn != nil {
		fn(resp)
	}
}

func newServiceUnderTest() (*Service, *fakeSnapshots, *fakeChannel) {
	snapshots := &fakeSnapshots{
		state: model.GameState{
			GameID:       "G1",
			ActivePlayer: "alice",
			Players: []model.PlayerState{
				{Username: "alice", CardCount: 5},
				{Username: "bob", CardCount: 5},
				{Username: "carol", CardCount: 5},
			},
		},
		personal: model.PersonalChannel{GameID: "G1", ChannelID: 7},
	}
	ch := &fakeChannel{}
	return New(snapshots, ch, log.New(io.Discard, "", 0)), snapshots, ch
}

func TestJoinBootstrapsAndRequestsHand(t *testing.T) {
	service, snapshots, ch := newServiceUnderTest()

	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	assert.Equal(t, []string{"state", "channel"}, snapshots.fetches)
	assert.Equal(t, "G1", ch.gameID)
	assert.Equal(t, 7, ch.channelID)
	assert.Equal(t, "G1", service.GameID())
	assert.Equal(t, "alice", service.State().ActivePlayer)

	require.Len(t, ch.interactions, 1)
	assert.Equal(t, channel.CommandGetHand, ch.interactions[0].cmd)
	assert.Equal(t, "Bearer tok", ch.interactions[0].authToken)
}

func TestJoinRunsOnce(t *testing.T) {
	service, snapshots, _ := newServiceUnderTest()

	require.NoError(t, service.Join(context.Background(), "Bearer tok"))
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	assert.Equal(t, []string{"state", "channel"}, snapshots.fetches)
}

func TestJoinSnapshotFailureResetsGuard(t *testing.T) {
	service, snapshots, _ := newServiceUnderTest()
	snapshots.stateErr = fmt.Errorf("backend down")

	require.Error(t, service.Join(context.Background(), "Bearer tok"))

	snapshots.stateErr = nil
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))
	assert.Equal(t, []string{"state", "state", "channel"}, snapshots.fetches)
}

func TestJoinHandRequestFailureDisconnects(t *testing.T) {
	service, _, ch := newServiceUnderTest()
	ch.interactErr = fmt.Errorf("session gone")

	require.Error(t, service.Join(context.Background(), "Bearer tok"))
	assert.False(t, ch.connected)
	assert.Empty(t, service.GameID())
}

func TestHandReplacedOnCreatedResponse(t *testing.T) {
	service, _, ch := newServiceUnderTest()
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	ch.pushInteraction(model.InteractionResponse{StatusCode: 201, Status: "CREATED", Response: "C:7;H:A"})

	hand := service.Hand()
	require.Len(t, hand, 2)
	assert.Equal(t, "C:7", hand[0].String())
	assert.Equal(t, "H:A", hand[1].String())
}

func TestNonHandResponseLeavesHandAndForwards(t *testing.T) {
	service, _, ch := newServiceUnderTest()

	var observed []model.InteractionResponse
	service.SetInteractionHandler(func(resp model.InteractionResponse) {
		observed = append(observed, resp)
	})
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	ch.pushInteraction(model.InteractionResponse{StatusCode: 201, Status: "CREATED", Response: "H:K"})
	ch.pushInteraction(model.InteractionResponse{StatusCode: 400, Status: "BAD_REQUEST", Response: "not your turn"})

	hand := service.Hand()
	require.Len(t, hand, 1)
	assert.Equal(t, "H:K", hand[0].String())
	require.Len(t, observed, 2)
	assert.Equal(t, "not your turn", observed[1].Response)
}

func TestUnparsableHandKeepsPrevious(t *testing.T) {
	service, _, ch := newServiceUnderTest()
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	ch.pushInteraction(model.InteractionResponse{StatusCode: 201, Status: "CREATED", Response: "H:K"})
	ch.pushInteraction(model.InteractionResponse{StatusCode: 201, Status: "CREATED", Response: "garbage"})

	hand := service.Hand()
	require.Len(t, hand, 1)
	assert.Equal(t, "H:K", hand[0].String())
}

func TestStatePushReplacesStateWholesale(t *testing.T) {
	service, _, ch := newServiceUnderTest()

	var observed []model.GameState
	service.SetStateHandler(func(state model.GameState) {
		observed = append(observed, state)
	})
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	ch.pushState(model.GameState{GameID: "G1", ActivePlayer: "bob"})

	assert.Equal(t, "bob", service.State().ActivePlayer)
	// The snapshot applied during Join also goes through the observer.
	require.Len(t, observed, 2)
	assert.Equal(t, "bob", observed[1].ActivePlayer)
}

func TestOpponentsRotateAfterLocalPlayer(t *testing.T) {
	service, _, _ := newServiceUnderTest()
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	opponents := service.Opponents("bob")
	require.Len(t, opponents, 2)
	assert.Equal(t, "carol", opponents[0].Username)
	assert.Equal(t, "alice", opponents[1].Username)
}

func TestCommandsUseStoredTokenAndGame(t *testing.T) {
	service, _, ch := newServiceUnderTest()
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))

	king := model.Card{Suit: model.SuitHearts, Value: model.ValueKing}
	jack := model.Card{Suit: model.SuitClubs, Value: model.ValueJack}

	require.NoError(t, service.RequestHand())
	require.NoError(t, service.Discard(king))
	require.NoError(t, service.Draw())
	require.NoError(t, service.Pass())
	require.NoError(t, service.Play(jack, model.CardSuit("SPADES")))

	// Index 0 is the getHand issued during Join.
	require.Len(t, ch.interactions, 6)
	cmds := make([]channel.Command, 0, 5)
	for _, call := range ch.interactions[1:] {
		assert.Equal(t, "Bearer tok", call.authToken)
		assert.Equal(t, "G1", call.gameID)
		cmds = append(cmds, call.cmd)
	}
	assert.Equal(t, []channel.Command{
		channel.CommandGetHand,
		channel.CommandDiscard,
		channel.CommandDrawFromPile,
		channel.CommandPass,
		channel.CommandPlay,
	}, cmds)
	assert.Equal(t, king, *ch.interactions[2].card)
	assert.Equal(t, jack, *ch.interactions[5].card)
	assert.Equal(t, model.CardSuit("SPADES"), ch.interactions[5].suit)
}

func TestLeaveDisconnectsAndResets(t *testing.T) {
	service, _, ch := newServiceUnderTest()
	require.NoError(t, service.Join(context.Background(), "Bearer tok"))
	ch.pushInteraction(model.InteractionResponse{StatusCode: 201, Status: "CREATED", Response: "H:K"})

	service.Leave()

	assert.False(t, ch.connected)
	assert.Empty(t, service.GameID())
	assert.Empty(t, service.Hand())
	assert.Empty(t, service.State().ActivePlayer)
}
