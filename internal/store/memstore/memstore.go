// Package memstore is an in-memory key-value store. It backs the "memory"
// backend and lets tests inject read and write failures.
package memstore

import (
	"context"
	"sync"
)

// Store is a mutex-guarded map. The zero value is not usable; call New.
type Store struct {
	mu   sync.RWMutex
	data map[string]string

	getErr error
	setErr error
	writes []string // every value passed to Set, in call order
}

func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, value)
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

// Put seeds a value without recording a write.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}

// FailGet makes every Get return err until cleared with nil.
func (s *Store) FailGet(err error) {
	s.mu.Lock()
	s.getErr = err
	s.mu.Unlock()
}

// FailSet makes every Set return err until cleared with nil.
func (s *Store) FailSet(err error) {
	s.mu.Lock()
	s.setErr = err
	s.mu.Unlock()
}

// Writes returns a copy of every value Set was called with.
func (s *Store) Writes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}
