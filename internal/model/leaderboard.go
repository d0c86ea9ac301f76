package model

// LeaderboardEntry is one row of the global leaderboard, also used for the
// personal stats of a single player.
type LeaderboardEntry struct {
	Username      string `json:"username"`
	GamesPlayed   int    `json:"gamesPlayed"`
	MauMauWins    int    `json:"mauMauWins"`
	SchwimmenWins int    `json:"schwimmenWins"`
	MaexxleWins   int    `json:"maexxleWins"`
}
