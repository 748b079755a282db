package conversation

import (
	"sync"
	"time"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
)

// Draft accumulates the in-progress appointment or mutation across turns.
// Fields are populated strictly in the order the active flow dictates.
type Draft struct {
	PatientName string
	Problem     string
	ServiceType string
	Date        string
	Time        string
	Phone       string
	DoctorName  string
	Notes       string

	// Cancel/reschedule working set.
	Candidates []clinic.Appointment
	Selected   *clinic.Appointment
	NewDate    string
	NewTime    string
}

// Session is one user's conversational context.
type Session struct {
	UserName  string
	State     State
	Draft     Draft
	CreatedAt time.Time
}

// SessionStore holds per-user sessions behind a single mutex. One lock is
// enough: a user's turns are serialized by the conversational protocol, so
// only cross-user map access needs guarding.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (s *SessionStore) newSession(userName string) *Session {
	return &Session{
		UserName:  userName,
		State:     StateStart,
		Draft:     Draft{PatientName: userName},
		CreatedAt: s.now(),
	}
}

// GetOrCreate returns the user's session, creating it on first contact.
func (s *SessionStore) GetOrCreate(userName string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userName]; ok {
		return sess
	}
	sess := s.newSession(userName)
	s.sessions[userName] = sess
	return sess
}

// Reset discards the user's session and returns a fresh one.
func (s *SessionStore) Reset(userName string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.newSession(userName)
	s.sessions[userName] = sess
	return sess
}

// SweepExpired removes sessions older than ttl and returns how many went.
func (s *SessionStore) SweepExpired(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for user, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > ttl {
			delete(s.sessions, user)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
