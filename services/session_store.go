package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docquiz/models"
)

// DefaultSessionTTL bounds how long an idle play session stays resident.
// Sessions are memory-only; expiry means restart, never resume.
const DefaultSessionTTL = 30 * time.Minute

type sessionEntry struct {
	session  *QuizSession
	deadline time.Time
}

// SessionStore keeps live play sessions in memory, keyed by a random
// session ID handed to the respondent.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*sessionEntry
}

// NewSessionStore creates a store with the given idle TTL; zero means
// DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Create registers a new session for the experience and returns its ID.
func (s *SessionStore) Create(experience *models.TriviaExperience, emitter EventEmitter) (string, *QuizSession) {
	session := NewQuizSession(experience, emitter)
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: session, deadline: s.now().Add(s.ttl)}
	s.sweepLocked()
	s.mu.Unlock()

	return id, session
}

// Get returns the session for id, refreshing its deadline. Expired or
// unknown IDs report ErrSessionNotFound.
func (s *SessionStore) Get(id string) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	if s.now().After(entry.deadline) {
		delete(s.sessions, id)
		return nil, models.ErrSessionNotFound
	}
	entry.deadline = s.now().Add(s.ttl)
	return entry.session, nil
}

// Delete drops a session; absent IDs are ignored.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of resident sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// sweepLocked drops expired entries; called opportunistically on writes so
// abandoned sessions do not accumulate.
func (s *SessionStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.sessions {
		if now.After(entry.deadline) {
			delete(s.sessions, id)
		}
	}
}
