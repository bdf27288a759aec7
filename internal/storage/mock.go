package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/world"
)

// MockStorage is an in-memory Storage implementation for tests. Records
// are stored as JSON so load returns an independent copy.
type MockStorage struct {
	mu       sync.RWMutex
	worlds   map[string][]byte
	sessions map[string][]byte

	PingErr error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		worlds:   make(map[string][]byte),
		sessions: make(map[string][]byte),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveWorld(ctx context.Context, w *world.World) error {
	if w.Name == "" {
		return fmt.Errorf("world name is required")
	}
	w.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(w)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[w.Name] = data
	return nil
}

func (m *MockStorage) LoadWorld(ctx context.Context, name string) (*world.World, error) {
	m.mu.RLock()
	data, ok := m.worlds[name]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var w world.World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (m *MockStorage) DeleteWorld(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.worlds, name)
	delete(m.sessions, name)
	return nil
}

func (m *MockStorage) ListWorlds(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.worlds))
	for name := range m.worlds {
		names = append(names, name)
	}
	return names, nil
}

func (m *MockStorage) SaveSession(ctx context.Context, sess *adventure.Session) error {
	if sess.World == nil || sess.World.Name == "" {
		return fmt.Errorf("session world name is required")
	}
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.World.Name] = data
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, worldName string) (*adventure.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[worldName]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var sess adventure.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, worldName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, worldName)
	return nil
}
