package persist

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/waypost/navtree/node"
)

const snapshotExt = ".json"

type fileStore struct {
	root string
}

// NewFileStore creates a SnapshotStore backed by the filesystem. Each id maps
// to one JSON file under root; writes go through a temp file plus rename so
// a crash mid-save never leaves a torn snapshot behind.
func NewFileStore(root string) SnapshotStore {
	return &fileStore{root: root}
}

func (s *fileStore) path(id string) string {
	return filepath.Join(s.root, id+snapshotExt)
}

func (s *fileStore) Save(_ context.Context, id string, root node.NavNode) error {
	data, err := node.Marshal(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	if err := os.Rename(tmpName, s.path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}
	return nil
}

func (s *fileStore) Load(_ context.Context, id string) (node.NavNode, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}

	root, err := node.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}
	return root, nil
}

func (s *fileStore) Delete(_ context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete failed: %s: %w", id, err)
	}
	return nil
}

func (s *fileStore) List(_ context.Context) ([]string, error) {
	var ids []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !strings.HasSuffix(d.Name(), snapshotExt) {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(d.Name(), snapshotExt))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return ids, nil
}
