package channel

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"maumau-client/internal/transport"
)

// In-memory stand-ins for the broker session, mirroring the repository fakes
// the REST side uses in its tests.

type fakePublish struct {
	destination string
	body        any
}

type fakeSession struct {
	mu        sync.Mutex
	connected bool
	published []fakePublish
	subs      map[string]*fakeSubscription
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		connected: true,
		subs:      make(map[string]*fakeSubscription),
	}
}

func (s *fakeSession) Publish(destination string, body any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return fmt.Errorf("publish on deactivated session")
	}
	s.published = append(s.published, fakePublish{destination: destination, body: body})
	return nil
}

func (s *fakeSession) Subscribe(destination string, fn transport.HandlerFunc) (transport.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil, fmt.Errorf("subscribe on deactivated session")
	}
	sub := &fakeSubscription{session: s, destination: destination, fn: fn, active: true}
	s.subs[destination] = sub
	return sub, nil
}

func (s *fakeSession) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	for _, sub := range s.subs {
		sub.active = false
	}
	return nil
}

func (s *fakeSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// push simulates a server push on a topic. Pushes after unsubscribe or
// deactivation are dropped, never delivered.
func (s *fakeSession) push(t *testing.T, destination string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	s.mu.Lock()
	sub := s.subs[destination]
	deliver := sub != nil && sub.active && s.connected
	s.mu.Unlock()

	if deliver {
		sub.fn(data)
	}
}

func (s *fakeSession) activeSubscriptions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, sub := range s.subs {
		if sub.active {
			count++
		}
	}
	return count
}

func (s *fakeSession) sent() []fakePublish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fakePublish(nil), s.published...)
}

type fakeSubscription struct {
	session     *fakeSession
	destination string
	fn          transport.HandlerFunc
	active      bool
}

func (sub *fakeSubscription) Destination() string {
	return sub.destination
}

func (sub *fakeSubscription) Unsubscribe() error {
	sub.session.mu.Lock()
	defer sub.session.mu.Unlock()
	sub.active = false
	return nil
}

type fakeDialer struct {
	mu       sync.Mutex
	err      error
	sessions []*fakeSession
}

func (d *fakeDialer) Dial(brokerURL string) (transport.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	sess := newFakeSession()
	d.sessions = append(d.sessions, sess)
	return sess, nil
}

func (d *fakeDialer) last() *fakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sessions) == 0 {
		return nil
	}
	return d.sessions[len(d.sessions)-1]
}
