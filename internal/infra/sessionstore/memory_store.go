package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/edudigital/portal/internal/domain/assistant"
	"github.com/edudigital/portal/pkg/util"
)

type sessionRecord struct {
	session   assistant.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionRecord
	ttl      time.Duration
	now      util.Clock
}

// NewMemoryStore constructs a store; a non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]sessionRecord),
		ttl:      ttl,
		now:      util.NowUTC,
	}
}

// Get implements assistant.Store.
func (s *MemoryStore) Get(_ context.Context, id string) (assistant.Session, bool, error) {
	s.mu.RLock()
	record, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return assistant.Session{}, false, nil
	}
	if s.expired(record.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return assistant.Session{}, false, nil
	}
	return cloneSession(record.session), true, nil
}

// Save implements assistant.Store and refreshes the expiry.
func (s *MemoryStore) Save(_ context.Context, session assistant.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.sessions[session.ID] = sessionRecord{session: cloneSession(session), expiresAt: exp}
	s.sweepLocked()
	return nil
}

// Delete implements assistant.Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) sweepLocked() {
	for id, record := range s.sessions {
		if s.expired(record.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

func cloneSession(session assistant.Session) assistant.Session {
	session.Messages = append([]assistant.Message(nil), session.Messages...)
	if session.Document != nil {
		doc := *session.Document
		session.Document = &doc
	}
	return session
}

var _ assistant.Store = (*MemoryStore)(nil)
