package channel

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"maumau-client/internal/model"
	"maumau-client/internal/transport"
)

type changeSettingsRequest struct {
	AuthToken  string           `json:"authToken"`
	GameType   model.GameType   `json:"gameType"`
	Visibility model.Visibility `json:"visibility"`
	AmountBots int              `json:"amountBots"`
	AFKTimer   int              `json:"afkTimer"`
	Rules      []model.Rule     `json:"rules"`
	Difficulty model.Difficulty `json:"difficulty"`
}

type setReadyStateRequest struct {
	AuthToken  string `json:"authToken"`
	ReadyState string `json:"readyState"`
}

type startGameRequest struct {
	AuthToken string `json:"authToken"`
}

type targetPlayerRequest struct {
	AuthToken      string `json:"authToken"`
	TargetUsername string `json:"targetUsername"`
}

// Lobby is the lobby channel adapter. It holds two subscriptions: the lobby
// state topic and the game start topic. They are established together inside
// Connect and torn down together in Disconnect.
type Lobby struct {
	sessions *transport.Manager
	broker   string
	logger   *log.Logger

	mu       sync.Mutex
	session  transport.Session
	stateSub transport.Subscription
	startSub transport.Subscription
}

func NewLobby(sessions *transport.Manager, brokerURL string, logger *log.Logger) *Lobby {
	return &Lobby{
		sessions: sessions,
		broker:   brokerURL,
		logger:   logger,
	}
}

// Connect opens the lobby session and registers both subscriptions. If the
// second subscription fails the first is cancelled again, so the adapter
// never ends up half-subscribed.
func (l *Lobby) Connect(lobbyCode string, onState func(model.LobbyState), onGameStart func(gameID string)) error {
	sess, err := l.sessions.Open(transport.DomainLobby, l.broker)
	if err != nil {
		return err
	}

	stateSub, err := sess.Subscribe(lobbyStateTopic(lobbyCode), func(body []byte) {
		var state model.LobbyState
		if err := json.Unmarshal(body, &state); err != nil {
			l.logger.Printf("lobby: dropping malformed state push: %v", err)
			return
		}
		onState(normalizeLobbyState(state))
	})
	if err != nil {
		l.sessions.Deactivate(transport.DomainLobby)
		return err
	}

	startSub, err := sess.Subscribe(lobbyStartTopic(lobbyCode), func(body []byte) {
		var gameID string
		if err := json.Unmarshal(body, &gameID); err != nil {
			l.logger.Printf("lobby: dropping malformed start push: %v", err)
			return
		}
		onGameStart(gameID)
	})
	if err != nil {
		if uerr := stateSub.Unsubscribe(); uerr != nil {
			l.logger.Printf("lobby: unsubscribe state: %v", uerr)
		}
		l.sessions.Deactivate(transport.DomainLobby)
		return err
	}

	l.mu.Lock()
	l.session = sess
	l.stateSub = stateSub
	l.startSub = startSub
	l.mu.Unlock()
	return nil
}

// normalizeLobbyState fills in default settings when the push describes an
// empty lobby. A freshly reset lobby omits these fields server-side; a lobby
// with players always carries authoritative values, so the substitution only
// applies at zero players.
func normalizeLobbyState(state model.LobbyState) model.LobbyState {
	if state.AmountPlayers != 0 {
		return state
	}
	state.GameType = model.GameTypeMauMau
	state.Difficulty = model.DifficultyEasy
	state.Visibility = model.VisibilityPrivate
	return state
}

// PublishSettings sends the full settings subset. The server replaces its
// settings wholesale, so partial updates are never sent.
func (l *Lobby) PublishSettings(authToken string, state model.LobbyState) error {
	sess, ok := l.live()
	if !ok {
		return fmt.Errorf("lobby: publish settings without connection")
	}
	return sess.Publish(lobbySettingsDestination(state.LobbyCode), changeSettingsRequest{
		AuthToken:  authToken,
		GameType:   state.GameType,
		Visibility: state.Visibility,
		AmountBots: state.AmountBots,
		AFKTimer:   state.AFKTimer,
		Rules:      state.Rules,
		Difficulty: state.Difficulty,
	})
}

// PublishReady announces the member's ready state.
func (l *Lobby) PublishReady(authToken, lobbyCode string, member model.LobbyMemberState) error {
	sess, ok := l.live()
	if !ok {
		return fmt.Errorf("lobby: publish ready without connection")
	}
	readyState := "NOT_READY"
	if member.ReadyCheck {
		readyState = "READY"
	}
	return sess.Publish(lobbyReadyDestination(lobbyCode), setReadyStateRequest{
		AuthToken:  authToken,
		ReadyState: readyState,
	})
}

// PublishStart asks the server to start the game. The game id comes back on
// the start topic for everyone in the lobby.
func (l *Lobby) PublishStart(authToken, lobbyCode string) error {
	sess, ok := l.live()
	if !ok {
		return fmt.Errorf("lobby: publish start without connection")
	}
	return sess.Publish(lobbyStartDestination(lobbyCode), startGameRequest{AuthToken: authToken})
}

// PublishKick asks the server to remove a player from the lobby.
func (l *Lobby) PublishKick(lobbyCode, authToken, targetUsername string) error {
	sess, ok := l.live()
	if !ok {
		return fmt.Errorf("lobby: publish kick without connection")
	}
	return sess.Publish(lobbyKickDestination(lobbyCode), targetPlayerRequest{
		AuthToken:      authToken,
		TargetUsername: targetUsername,
	})
}

// PublishPromote transfers the host rank to another player.
func (l *Lobby) PublishPromote(lobbyCode, authToken, targetUsername string) error {
	sess, ok := l.live()
	if !ok {
		return fmt.Errorf("lobby: publish promote without connection")
	}
	return sess.Publish(lobbyTransferHostDestination(lobbyCode), targetPlayerRequest{
		AuthToken:      authToken,
		TargetUsername: targetUsername,
	})
}

// Disconnect cancels both subscriptions and tears the session down.
func (l *Lobby) Disconnect() {
	l.mu.Lock()
	stateSub, startSub := l.stateSub, l.startSub
	l.session = nil
	l.stateSub = nil
	l.startSub = nil
	l.mu.Unlock()

	if stateSub != nil {
		if err := stateSub.Unsubscribe(); err != nil {
			l.logger.Printf("lobby: unsubscribe state: %v", err)
		}
	}
	if startSub != nil {
		if err := startSub.Unsubscribe(); err != nil {
			l.logger.Printf("lobby: unsubscribe start: %v", err)
		}
	}
	l.sessions.Deactivate(transport.DomainLobby)
	l.logger.Printf("lobby: disconnected")
}

func (l *Lobby) live() (transport.Session, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session == nil || !l.session.Connected() {
		return nil, false
	}
	return l.session, true
}
