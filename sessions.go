package main

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrServerFull  = errors.New("server full")
	ErrDuplicateID = errors.New("session id already registered")
)

// SessionManager manages all live sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
}

// NewSessionManager creates an empty manager that admits at most max sessions.
func NewSessionManager(max int) *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session), max: max}
}

// Add registers a session unless the manager is at capacity.
func (m *SessionManager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.max {
		return ErrServerFull
	}
	if _, exists := m.sessions[s.ID]; exists {
		return ErrDuplicateID
	}
	m.sessions[s.ID] = s
	return nil
}

// Remove unregisters a session
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Get returns a session by ID
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Full reports whether another session would be refused.
func (m *SessionManager) Full() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions) >= m.max
}

// Snapshot returns a copy of all current sessions
func (m *SessionManager) Snapshot() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

// Leaderboard returns the top n sessions by score, longer snakes first on ties.
func (m *SessionManager) Leaderboard(n int) []LeaderboardEntry {
	sessions := m.Snapshot()
	entries := make([]LeaderboardEntry, len(sessions))
	for i, s := range sessions {
		snap := s.Snapshot()
		entries[i] = LeaderboardEntry{ID: s.ID, Score: snap.Score, Length: len(snap.Snake)}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return a.ID < b.ID
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
