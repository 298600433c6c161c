// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dock-quiz/quiz"
)

var ErrSessionNotFound = errors.New("session not found")

type storedSession struct {
	mu       sync.Mutex
	session  *quiz.Session
	lastSeen time.Time
}

// SessionStore keeps live quiz sessions in memory. Events on one session
// run one at a time; different sessions never block each other.
type SessionStore struct {
	catalog *quiz.Catalog
	sink    quiz.Sink
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*storedSession
}

func NewSessionStore(catalog *quiz.Catalog, sink quiz.Sink, ttl time.Duration) *SessionStore {
	return &SessionStore{
		catalog:  catalog,
		sink:     sink,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*storedSession),
	}
}

// Create starts a new session in the intro phase and returns its id.
func (s *SessionStore) Create(origin quiz.Origin) string {
	id := uuid.NewString()
	session := quiz.NewSession(id, s.catalog, s.sink)
	session.SetOrigin(origin)

	s.mu.Lock()
	s.sessions[id] = &storedSession{session: session, lastSeen: s.now()}
	s.mu.Unlock()

	return id
}

// With runs fn while holding the session's lock.
func (s *SessionStore) With(id string, fn func(*quiz.Session) error) error {
	s.mu.Lock()
	stored, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	stored.mu.Lock()
	defer stored.mu.Unlock()

	// Sweep may have dropped the session before its lock was taken.
	s.mu.Lock()
	current := s.sessions[id]
	s.mu.Unlock()
	if current != stored {
		return ErrSessionNotFound
	}

	stored.lastSeen = s.now()
	return fn(stored.session)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. A zero TTL keeps sessions forever.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, stored := range s.sessions {
		// Skip sessions with an event in flight.
		if !stored.mu.TryLock() {
			continue
		}
		if stored.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
		stored.mu.Unlock()
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Info("expired sessions removed", "count", n, "remaining", s.Len())
			}
		}
	}
}
