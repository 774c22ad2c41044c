// Package session keeps per-visitor state for the web front end: the
// selected dictionary and the words removed from it. Removal never touches
// the dictionary file; each request replays the overlay onto a fresh trie.
package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoSession is returned for unknown or expired session ids.
	ErrNoSession = errors.New("no such session")

	// ErrAlreadyRemoved is returned when a word is removed twice.
	ErrAlreadyRemoved = errors.New("word already removed")
)

// Session is a snapshot of one visitor's state.
type Session struct {
	ID         string
	Dictionary string
	Removed    []string
	LastSeen   time.Time
}

// Store holds sessions in memory.
type Store struct {
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A zero ttl keeps sessions forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session on dictionary.
func (s *Store) Create(dictionary string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:         uuid.NewString(),
		Dictionary: dictionary,
		LastSeen:   s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess.snapshot()
}

// Get returns the session and refreshes its expiry.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return sess.snapshot(), nil
}

// MarkRemoved adds word to the session's overlay.
func (s *Store) MarkRemoved(id, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	if slices.Contains(sess.Removed, word) {
		return ErrAlreadyRemoved
	}
	sess.Removed = append(sess.Removed, word)
	return nil
}

// Removed returns the words removed in the session, oldest first.
func (s *Store) Removed(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sess.Removed), nil
}

// SetDictionary switches the session to name and clears the overlay. It
// reports false, leaving everything untouched, when name is already
// selected.
func (s *Store) SetDictionary(id, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return false, err
	}
	if sess.Dictionary == name {
		return false, nil
	}
	sess.Dictionary = name
	sess.Removed = nil
	return true, nil
}

// Reset returns the session to a fresh state on dictionary, keeping its id.
func (s *Store) Reset(id, dictionary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.Dictionary = dictionary
	sess.Removed = nil
	return nil
}

// Delete forgets a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep drops expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// lookup must be called with mu held.
func (s *Store) lookup(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if s.expired(sess) {
		delete(s.sessions, id)
		return nil, ErrNoSession
	}
	sess.LastSeen = s.now()
	return sess, nil
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.LastSeen) > s.ttl
}

func (sess *Session) snapshot() Session {
	c := *sess
	c.Removed = slices.Clone(sess.Removed)
	return c
}
