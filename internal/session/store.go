package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps one value of T per session in an expiring cache. Every read
// or write of a session's value goes through that session's mutex, so
// callers never observe a half-applied transition.
type Store[T any] struct {
	cache  *cache.Cache
	ttl    time.Duration
	newFn  func() *T
	create sync.Mutex
}

type entry[T any] struct {
	mu    sync.Mutex
	value *T
}

// NewStore returns a store whose entries expire after ttl without use.
func NewStore[T any](ttl time.Duration, newFn func() *T) *Store[T] {
	cleanup := ttl
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Store[T]{
		cache: cache.New(ttl, cleanup),
		ttl:   ttl,
		newFn: newFn,
	}
}

// Update runs fn against the session's value, creating it on first use.
// The entry's expiry slides forward on every call.
func (s *Store[T]) Update(id string, fn func(*T) error) error {
	e := s.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.cache.Set(id, e, s.ttl)
	return fn(e.value)
}

// Delete forgets a session.
func (s *Store[T]) Delete(id string) {
	s.cache.Delete(id)
}

// Len reports how many live sessions the store holds.
func (s *Store[T]) Len() int {
	return s.cache.ItemCount()
}

func (s *Store[T]) entry(id string) *entry[T] {
	if v, ok := s.cache.Get(id); ok {
		return v.(*entry[T])
	}

	s.create.Lock()
	defer s.create.Unlock()
	if v, ok := s.cache.Get(id); ok {
		return v.(*entry[T])
	}
	e := &entry[T]{value: s.newFn()}
	s.cache.Set(id, e, s.ttl)
	return e
}
