// Package storage provides the key-value backends that hold the ledger documents.
package storage

import (
	"context"
	"errors"
	"sync"

	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
)

// ErrClosed is returned by a store after Close
var ErrClosed = errors.New("storage: store is closed")

// MemoryStore keeps documents in process memory. Values are copied on the way
// in and out so callers never share a backing array with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (s *MemoryStore) Write(ctx context.Context, key string, value []byte) error {
	return s.WriteBatch(ctx, []domainRepo.KeyValue{{Key: key, Value: value}})
}

func (s *MemoryStore) WriteBatch(ctx context.Context, entries []domainRepo.KeyValue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, e := range entries {
		s.data[e.Key] = clone(e.Value)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func clone(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
