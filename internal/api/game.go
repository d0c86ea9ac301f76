package api

import (
	"context"
	"net/http"

	"maumau-client/internal/model"
)

// GameSnapshot fetches the caller's current game state. The body carries the
// same double-encoded envelope as the live game topic.
func (c *Client) GameSnapshot(ctx context.Context, authToken string) (model.GameState, error) {
	var push model.GameStatePush
	if err := c.request(ctx, http.MethodGet, "/game/personal/state", authToken, nil, &push); err != nil {
		return model.GameState{}, err
	}
	return model.DecodeGameStateString(push.GameStateString)
}

// PersonalChannel fetches the game id and the caller's private reply channel
// id, the routing pair the game bootstrap connects with.
func (c *Client) PersonalChannel(ctx context.Context, authToken string) (model.PersonalChannel, error) {
	var ch model.PersonalChannel
	err := c.request(ctx, http.MethodGet, "/game/personal/channel", authToken, nil, &ch)
	return ch, err
}
