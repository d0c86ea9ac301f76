package model

import "fmt"

// GameType selects which card game a lobby is configured for.
type GameType string

const (
	GameTypeMauMau    GameType = "MAU_MAU"
	GameTypeSchwimmen GameType = "SCHWIMMEN"
	GameTypeMaexxle   GameType = "MAEXXLE"
)

var gameTypes = map[GameType]struct{}{
	GameTypeMauMau:    {},
	GameTypeSchwimmen: {},
	GameTypeMaexxle:   {},
}

func ParseGameType(s string) (GameType, error) {
	gt := GameType(s)
	if _, ok := gameTypes[gt]; !ok {
		return "", fmt.Errorf("model: unknown game type %q", s)
	}
	return gt, nil
}

// Difficulty is the bot difficulty of a lobby.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

var difficulties = map[Difficulty]struct{}{
	DifficultyEasy:   {},
	DifficultyMedium: {},
	DifficultyHard:   {},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := difficulties[d]; !ok {
		return "", fmt.Errorf("model: unknown difficulty %q", s)
	}
	return d, nil
}

// Visibility says whether a lobby is listed publicly.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	default:
		return "", fmt.Errorf("model: unknown visibility %q", s)
	}
}

// Rule is one optional game rule toggled on in the lobby settings.
type Rule struct {
	Rule string `json:"rule"`
}

// RankHost marks the lobby member that owns the lobby.
const RankHost = "HOST"

// LobbyMemberState is one human player inside a lobby.
type LobbyMemberState struct {
	Username   string `json:"username"`
	ImageID    int    `json:"imageId"`
	ReadyCheck bool   `json:"readyCheck"`
	Rank       string `json:"rank"`
}

// IsHost reports whether this member owns the lobby.
func (m LobbyMemberState) IsHost() bool {
	return m.Rank == RankHost
}

// LobbyState is the full lobby snapshot as pushed by the server. The client
// always replaces the whole object, never patches single fields.
type LobbyState struct {
	GameType      GameType           `json:"gameType"`
	PlayerList    []LobbyMemberState `json:"playerList"`
	BotList       []LobbyMemberState `json:"botList"`
	LobbyCode     string             `json:"lobbyCode"`
	Visibility    Visibility         `json:"visibility"`
	AmountBots    int                `json:"amountBots"`
	AmountPlayers int                `json:"amountPlayers"`
	AFKTimer      int                `json:"afkTimer"`
	Rules         []Rule             `json:"rules"`
	Difficulty    Difficulty         `json:"difficulty"`
}

// Member returns the player list entry for the given username.
func (l LobbyState) Member(username string) (LobbyMemberState, bool) {
	for _, member := range l.PlayerList {
		if member.Username == username {
			return member, true
		}
	}
	return LobbyMemberState{}, false
}

// PublicLobby is one row of the public lobby listing.
type PublicLobby struct {
	GameType      GameType `json:"gameType"`
	AmountPlayers int      `json:"amountPlayers"`
	LobbyCode     string   `json:"lobbyCode"`
}
