// Package persist provides tree snapshot stores for process-restart and
// state-save collaborators, built on the node package's tagged-union JSON
// codec. Implementations must be safe for concurrent use.
package persist

import (
	"context"
	"fmt"
	"sync"

	"github.com/waypost/navtree/node"
)

// SnapshotStore persists whole navigation trees by identifier.
//
// Stores operate at the serialization boundary: trees go in and come out
// through the node codec, so every load re-validates container invariants
// and key uniqueness before a tree re-enters the system.
type SnapshotStore interface {
	// Save persists the tree under id, overwriting any previous snapshot.
	Save(ctx context.Context, id string, root node.NavNode) error
	// Load retrieves and re-validates the tree stored under id.
	// Returns ErrSnapshotNotFound if no snapshot exists.
	Load(ctx context.Context, id string) (node.NavNode, error)
	// Delete removes the snapshot under id. Missing ids are ignored.
	Delete(ctx context.Context, id string) error
	// List returns all ids with stored snapshots.
	List(ctx context.Context) ([]string, error)
}

type memoryStore struct {
	snapshots map[string][]byte
	mu        sync.RWMutex
}

// NewMemoryStore creates a SnapshotStore backed by an in-process map.
// Snapshots are lost when the process terminates — suitable for tests and
// in-session restoration, not durable persistence.
func NewMemoryStore() SnapshotStore {
	return &memoryStore{
		snapshots: make(map[string][]byte),
	}
}

func (m *memoryStore) Save(_ context.Context, id string, root node.NavNode) error {
	data, err := node.Marshal(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = data
	return nil
}

func (m *memoryStore) Load(_ context.Context, id string) (node.NavNode, error) {
	m.mu.RLock()
	data, exists := m.snapshots[id]
	m.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	root, err := node.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}
	return root, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

func (m *memoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}
