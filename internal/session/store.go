// Package session keeps the live wizard instances of the HTTP API in an
// expiring LRU cache. Nothing is persisted.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"primeadapt/internal/widget"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one wizard instance and the renderer that mirrors it.
type Session struct {
	ID       string
	Widget   *widget.Widget
	Renderer *widget.Headless
	Created  time.Time
}

type Store struct {
	cache *expirable.LRU[string, *Session]
}

// NewStore holds at most size sessions. A session expires once it has not
// been looked up for ttl.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{cache: expirable.NewLRU[string, *Session](size, nil, ttl)}
}

// Add registers a widget under a fresh id.
func (s *Store) Add(w *widget.Widget, r *widget.Headless) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Widget:   w,
		Renderer: r,
		Created:  time.Now(),
	}
	s.cache.Add(sess.ID, sess)
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	// Re-adding renews the entry's expiry.
	s.cache.Add(id, sess)
	return sess, nil
}

func (s *Store) Delete(id string) error {
	if !s.cache.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

func (s *Store) Len() int {
	return s.cache.Len()
}
