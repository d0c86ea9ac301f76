package channel

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"maumau-client/internal/model"
	"maumau-client/internal/transport"
)

type joinChatRequest struct {
	AuthToken string `json:"authToken"`
}

type sendMessageRequest struct {
	AuthToken string `json:"authToken"`
	Content   string `json:"content"`
}

// Chat is the chatroom channel adapter. The handshake is two-step: Connect
// subscribes to the receive topic, then the caller announces the join.
type Chat struct {
	sessions *transport.Manager
	broker   string
	logger   *log.Logger

	mu      sync.Mutex
	session transport.Session
	sub     transport.Subscription
}

func NewChat(sessions *transport.Manager, brokerURL string, logger *log.Logger) *Chat {
	return &Chat{
		sessions: sessions,
		broker:   brokerURL,
		logger:   logger,
	}
}

// Connect opens the chat session and subscribes to the chatroom's receive
// topic. The subscription is registered before Connect returns, so no push
// can slip between "connected" and "subscribed".
func (c *Chat) Connect(chatroomID string, onMessage func(model.ChatMessage)) error {
	sess, err := c.sessions.Open(transport.DomainChat, c.broker)
	if err != nil {
		return err
	}

	sub, err := sess.Subscribe(chatReceiveTopic(chatroomID), func(body []byte) {
		var msg model.ChatMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			c.logger.Printf("chat: dropping malformed message: %v", err)
			return
		}
		onMessage(msg)
	})
	if err != nil {
		c.sessions.Deactivate(transport.DomainChat)
		return err
	}

	c.mu.Lock()
	c.session = sess
	c.sub = sub
	c.mu.Unlock()
	return nil
}

// AnnounceJoin identifies the user to the chatroom after Connect succeeded.
func (c *Chat) AnnounceJoin(chatroomID, authToken string) error {
	sess, ok := c.live()
	if !ok {
		return fmt.Errorf("chat: announce join without connection")
	}
	return sess.Publish(chatJoinDestination(chatroomID), joinChatRequest{AuthToken: authToken})
}

// Send publishes one chat message. Fire-and-forget; the message comes back
// on the receive topic once the server accepted it.
func (c *Chat) Send(authToken, content, chatroomID string) error {
	sess, ok := c.live()
	if !ok {
		return fmt.Errorf("chat: send without connection")
	}
	return sess.Publish(chatSendDestination(chatroomID), sendMessageRequest{
		AuthToken: authToken,
		Content:   content,
	})
}

// Disconnect cancels the subscription and tears the session down.
func (c *Chat) Disconnect() {
	c.mu.Lock()
	sub := c.sub
	c.session = nil
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Printf("chat: unsubscribe: %v", err)
		}
	}
	c.sessions.Deactivate(transport.DomainChat)
	c.logger.Printf("chat: disconnected")
}

func (c *Chat) live() (transport.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || !c.session.Connected() {
		return nil, false
	}
	return c.session, true
}
