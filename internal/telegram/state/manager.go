package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/futig/career-agent/internal/pkg/cache"
)

const keyPrefix = "telegram:state:"

// Manager loads and saves user state as JSON in a cache.Store, so a Redis
// store keeps conversations across restarts.
type Manager struct {
	store cache.Store
	ttl   time.Duration

	mu    sync.Mutex
	locks map[int64]*userLock
}

// userLock is dropped from the map once nobody holds or waits for it.
type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store cache.Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		locks: make(map[int64]*userLock),
	}
}

// Lock serializes updates from one user. Call the returned func to release.
func (m *Manager) Lock(userID int64) func() {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &userLock{}
		m.locks[userID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			m.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(m.locks, userID)
			}
			m.mu.Unlock()
		})
	}
}

func (m *Manager) lockCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// Get returns the stored state, or a fresh one awaiting a profile.
func (m *Manager) Get(ctx context.Context, userID, chatID int64) (*UserState, error) {
	raw, ok, err := m.store.Get(ctx, key(userID))
	if err != nil {
		return nil, fmt.Errorf("load state for user %d: %w", userID, err)
	}
	if !ok {
		return newUserState(userID, chatID), nil
	}

	var s UserState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode state for user %d: %w", userID, err)
	}
	return &s, nil
}

func (m *Manager) Save(ctx context.Context, s *UserState) error {
	s.UpdatedAt = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state for user %d: %w", s.UserID, err)
	}
	if err := m.store.Set(ctx, key(s.UserID), string(raw), m.ttl); err != nil {
		return fmt.Errorf("save state for user %d: %w", s.UserID, err)
	}
	return nil
}

// Reset forgets everything about the user.
func (m *Manager) Reset(ctx context.Context, userID int64) error {
	if err := m.store.Delete(ctx, key(userID)); err != nil {
		return fmt.Errorf("reset state for user %d: %w", userID, err)
	}
	return nil
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
