package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var _ Store = &MemoryStore{}

// MemoryStore keeps entries in process memory. Safe for concurrent use.
type MemoryStore struct {
	items *gocache.Cache
}

func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		items: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	text, ok := v.(string)
	return text, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.items.Set(key, value, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet cleaned up.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}
