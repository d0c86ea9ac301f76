package api

import (
	"context"
	"net/http"

	"maumau-client/internal/model"
)

// GlobalLeaderboard fetches the all-players ranking. No auth required.
func (c *Client) GlobalLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := c.request(ctx, http.MethodGet, "/leaderboard", "", nil, &entries)
	return entries, err
}

// PersonalLeaderboard fetches the caller's own stats row.
func (c *Client) PersonalLeaderboard(ctx context.Context, authToken string) (model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	err := c.request(ctx, http.MethodGet, "/leaderboard/stats", authToken, nil, &entry)
	return entry, err
}
