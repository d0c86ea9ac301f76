package api

import (
	"context"
	"net/http"

	"maumau-client/internal/model"
)

type createLobbyRequest struct {
	GameType model.GameType `json:"gameType"`
}

// CreateLobby opens a new lobby of the given game type owned by the caller.
func (c *Client) CreateLobby(ctx context.Context, authToken string, gameType model.GameType) error {
	return c.request(ctx, http.MethodPost, "/lobby/create", authToken,
		createLobbyRequest{GameType: gameType}, nil)
}

func (c *Client) JoinLobby(ctx context.Context, authToken, lobbyCode string) error {
	return c.request(ctx, http.MethodPost, "/lobby/"+lobbyCode+"/join", authToken, nil, nil)
}

func (c *Client) LeaveLobby(ctx context.Context, authToken, lobbyCode string) error {
	return c.request(ctx, http.MethodPut, "/lobby/"+lobbyCode+"/leave", authToken, nil, nil)
}

// LobbySnapshot fetches the caller's current lobby. This is the snapshot the
// lobby and chat bootstraps derive their routing ids from.
func (c *Client) LobbySnapshot(ctx context.Context, authToken string) (model.LobbyState, error) {
	var state model.LobbyState
	err := c.request(ctx, http.MethodGet, "/lobby/personal/state", authToken, nil, &state)
	return state, err
}

// PublicLobbies lists the joinable public lobbies. No auth required.
func (c *Client) PublicLobbies(ctx context.Context) ([]model.PublicLobby, error) {
	var lobbies []model.PublicLobby
	err := c.request(ctx, http.MethodGet, "/lobby/get/public/lobbies", "", nil, &lobbies)
	return lobbies, err
}
