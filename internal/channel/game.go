package channel

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"maumau-client/internal/model"
	"maumau-client/internal/transport"
)

// Command is one MauMau interaction verb as the server spells it.
type Command string

const (
	CommandGetHand      Command = "getHand"
	CommandDiscard      Command = "discard"
	CommandDrawFromPile Command = "drawFromDrawpile"
	CommandPass         Command = "pass"
	CommandPlay         Command = "play"
)

type interactRequest struct {
	AuthToken   string `json:"authToken"`
	Interaction string `json:"interaction"`
}

// Game is the game channel adapter. It holds the shared game state
// subscription and the player's private interaction subscription.
type Game struct {
	sessions *transport.Manager
	broker   string
	logger   *log.Logger

	mu          sync.Mutex
	session     transport.Session
	stateSub    transport.Subscription
	interactSub transport.Subscription
}

func NewGame(sessions *transport.Manager, brokerURL string, logger *log.Logger) *Game {
	return &Game{
		sessions: sessions,
		broker:   brokerURL,
		logger:   logger,
	}
}

// Connect opens the game session and registers the private interaction
// subscription and the shared state subscription. Both are live before
// Connect returns.
func (g *Game) Connect(gameID string, personalChannelID int, onState func(model.GameState), onInteraction func(model.InteractionResponse)) error {
	sess, err := g.sessions.Open(transport.DomainGame, g.broker)
	if err != nil {
		return err
	}

	interactSub, err := sess.Subscribe(gameInteractTopic(gameID, personalChannelID), func(body []byte) {
		var resp model.InteractionResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			g.logger.Printf("game: dropping malformed interaction response: %v", err)
			return
		}
		onInteraction(resp)
	})
	if err != nil {
		g.sessions.Deactivate(transport.DomainGame)
		return err
	}

	stateSub, err := sess.Subscribe(gameStateTopic(gameID), func(body []byte) {
		state, err := model.DecodeGameState(body)
		if err != nil {
			g.logger.Printf("game: dropping malformed state push: %v", err)
			return
		}
		onState(state)
	})
	if err != nil {
		if uerr := interactSub.Unsubscribe(); uerr != nil {
			g.logger.Printf("game: unsubscribe interact: %v", uerr)
		}
		g.sessions.Deactivate(transport.DomainGame)
		return err
	}

	g.mu.Lock()
	g.session = sess
	g.stateSub = stateSub
	g.interactSub = interactSub
	g.mu.Unlock()
	return nil
}

// Interact publishes one command for the running game. DISCARD requires a
// card and PLAY requires a card plus the chosen suit; a call missing those
// sends nothing, matching the server contract's expectation that the UI
// never offers such a move. The drop is logged.
func (g *Game) Interact(authToken, gameID string, cmd Command, card *model.Card, chosenSuit model.CardSuit) error {
	interaction, ok := encodeInteraction(cmd, card, chosenSuit)
	if !ok {
		g.logger.Printf("game: dropping %s interaction with missing parameters", cmd)
		return nil
	}

	sess, live := g.live()
	if !live {
		return fmt.Errorf("game: interact without connection")
	}
	return sess.Publish(gameInteractDestination(gameID), interactRequest{
		AuthToken:   authToken,
		Interaction: interaction,
	})
}

// encodeInteraction builds the interaction wire string. The second return is
// false when required parameters are absent.
func encodeInteraction(cmd Command, card *model.Card, chosenSuit model.CardSuit) (string, bool) {
	switch cmd {
	case CommandGetHand, CommandPass:
		return string(cmd), true
	case CommandDrawFromPile:
		return string(cmd) + " 1", true
	case CommandDiscard:
		if card == nil {
			return "", false
		}
		return string(cmd) + " " + card.String(), true
	case CommandPlay:
		if card == nil || chosenSuit == "" {
			return "", false
		}
		return string(cmd) + " " + card.String() + " " + string(chosenSuit), true
	default:
		return "", false
	}
}

// Disconnect cancels both subscriptions and tears the session down.
func (g *Game) Disconnect() {
	g.mu.Lock()
	stateSub, interactSub := g.stateSub, g.interactSub
	g.session = nil
	g.stateSub = nil
	g.interactSub = nil
	g.mu.Unlock()

	if stateSub != nil {
		if err := stateSub.Unsubscribe(); err != nil {
			g.logger.Printf("game: unsubscribe state: %v", err)
		}
	}
	if interactSub != nil {
		if err := interactSub.Unsubscribe(); err != nil {
			g.logger.Printf("game: unsubscribe interact: %v", err)
		}
	}
	g.sessions.Deactivate(transport.DomainGame)
	g.logger.Printf("game: disconnected")
}

func (g *Game) live() (transport.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil || !g.session.Connected() {
		return nil, false
	}
	return g.session, true
}
