package transport

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/go-stomp/stomp/v3"
	"github.com/google/uuid"
)

// HandlerFunc receives the raw body of one message pushed on a subscribed
// destination. Handlers must not block; they run on the subscription's pump
// goroutine.
type HandlerFunc func(body []byte)

// Session is one live connection to the message bus. Publishes are
// fire-and-forget; subscriptions are independent and concurrent.
type Session interface {
	Publish(destination string, body any) error
	Subscribe(destination string, fn HandlerFunc) (Subscription, error)
	Deactivate() error
	Connected() bool
}

// Subscription is one topic registration on a Session. It never outlives the
// session that created it; Unsubscribe is idempotent.
type Subscription interface {
	Destination() string
	Unsubscribe() error
}

type stompSession struct {
	conn   *stomp.Conn
	logger *log.Logger

	mu     sync.Mutex
	subs   map[string]*stompSubscription
	closed bool
}

func newStompSession(conn *stomp.Conn, logger *log.Logger) *stompSession {
	return &stompSession{
		conn:   conn,
		logger: logger,
		subs:   make(map[string]*stompSubscription),
	}
}

func (s *stompSession) Publish(destination string, body any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("transport: publish on deactivated session")
	}
	s.mu.Unlock()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("transport: marshal publish body: %w", err)
	}
	if err := s.conn.Send(destination, "application/json", payload); err != nil {
		return fmt.Errorf("transport: send to %s: %w", destination, err)
	}
	addPublished(1)
	return nil
}

func (s *stompSession) Subscribe(destination string, fn HandlerFunc) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("transport: subscribe on deactivated session")
	}

	raw, err := s.conn.Subscribe(destination, stomp.AckAuto)
	if err != nil {
		return nil, fmt.Errorf("transport: subscribe %s: %w", destination, err)
	}

	sub := &stompSubscription{
		id:          uuid.NewString(),
		destination: destination,
		raw:         raw,
		session:     s,
		done:        make(chan struct{}),
	}
	s.subs[sub.id] = sub
	incSubscriptions()

	go sub.pump(fn)
	return sub, nil
}

func (s *stompSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Deactivate unsubscribes all outstanding subscriptions, then closes the
// underlying connection. Teardown is best-effort; failures are logged and the
// session is considered gone either way.
func (s *stompSession) Deactivate() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	subs := make([]*stompSubscription, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Printf("transport: unsubscribe %s: %v", sub.destination, err)
		}
	}

	err := s.conn.Disconnect()
	if err != nil {
		s.logger.Printf("transport: disconnect: %v", err)
	} else {
		s.logger.Printf("transport: disconnected")
	}
	decSessions()
	return err
}

func (s *stompSession) removeSubscription(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[id]; ok {
		delete(s.subs, id)
		decSubscriptions()
	}
}

type stompSubscription struct {
	id          string
	destination string
	raw         *stomp.Subscription
	session     *stompSession

	once sync.Once
	done chan struct{}
}

func (sub *stompSubscription) Destination() string {
	return sub.destination
}

func (sub *stompSubscription) Unsubscribe() error {
	var err error
	sub.once.Do(func() {
		close(sub.done)
		sub.session.removeSubscription(sub.id)
		err = sub.raw.Unsubscribe()
	})
	return err
}

// pump forwards bus messages to the handler until the subscription ends.
// The done guard keeps an in-flight message from reaching the handler after
// Unsubscribe has returned.
func (sub *stompSubscription) pump(fn HandlerFunc) {
	for msg := range sub.raw.C {
		select {
		case <-sub.done:
			return
		default:
		}
		if msg.Err != nil {
			sub.session.logger.Printf("transport: receive on %s: %v", sub.destination, msg.Err)
			continue
		}
		addReceived(1)
		fn(msg.Body)
	}
}
