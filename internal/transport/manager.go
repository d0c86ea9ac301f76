package transport

import (
	"log"
	"sync"
)

// Domain is one logical channel group. Each domain gets its own broker
// connection so chat, lobby and game lifecycles stay independent.
type Domain string

const (
	DomainChat  Domain = "chat"
	DomainLobby Domain = "lobby"
	DomainGame  Domain = "game"
)

// Manager owns the per-domain bus sessions. It guarantees that at most one
// live session exists per domain: opening a domain that already has a live
// session retires the old one first, so subscriptions cannot leak across
// reconnects.
type Manager struct {
	dialer Dialer
	logger *log.Logger

	mu       sync.Mutex
	sessions map[Domain]Session
}

func NewManager(dialer Dialer, logger *log.Logger) *Manager {
	return &Manager{
		dialer:   dialer,
		logger:   logger,
		sessions: make(map[Domain]Session),
	}
}

// Open dials a fresh session for the domain, deactivating any previous live
// session for it first.
func (m *Manager) Open(domain Domain, brokerURL string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old := m.sessions[domain]; old != nil {
		if old.Connected() {
			if err := old.Deactivate(); err != nil {
				m.logger.Printf("transport: retire %s session: %v", domain, err)
			}
		}
		delete(m.sessions, domain)
	}

	sess, err := m.dialer.Dial(brokerURL)
	if err != nil {
		return nil, err
	}
	m.sessions[domain] = sess
	return sess, nil
}

// Deactivate tears down the domain's session if one is live. Teardown errors
// are logged, never returned; from the caller's point of view disconnecting
// always succeeds.
func (m *Manager) Deactivate(domain Domain) {
	m.mu.Lock()
	sess := m.sessions[domain]
	delete(m.sessions, domain)
	m.mu.Unlock()

	if sess == nil {
		return
	}
	if err := sess.Deactivate(); err != nil {
		m.logger.Printf("transport: deactivate %s session: %v", domain, err)
	}
}

// Live returns the domain's session if it is connected.
func (m *Manager) Live(domain Domain) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[domain]
	if sess == nil || !sess.Connected() {
		return nil, false
	}
	return sess, true
}
