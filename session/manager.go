// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/council-ballot/apiclient"
	"github.com/danielhkuo/council-ballot/auth"
	"github.com/danielhkuo/council-ballot/directory"
)

// Session is one browser's voting session. Callers must hold the lock
// while using Voting.
type Session struct {
	ID     string
	Client *apiclient.Client
	Voting *Voting

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager owns all live sessions, keyed by session ID
type Manager struct {
	directory *directory.Store
	receipts  *ReceiptStore
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store *directory.Store, receipts *ReceiptStore, ttl time.Duration) *Manager {
	return &Manager{
		directory: store,
		receipts:  receipts,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Create registers a new session that talks upstream through client
func (m *Manager) Create(client *apiclient.Client) *Session {
	s := &Session{
		ID:       auth.NewSessionID(),
		Client:   client,
		Voting:   NewVoting(client, m.directory, m.receipts),
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.Info("session created", "session_id", s.ID)
	return s
}

// Get returns a live session and refreshes its idle timer
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	now := m.now()
	if now.Sub(s.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL. Abandoned ballots
// go with them.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}
