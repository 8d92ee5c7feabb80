package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/ghostleg/pkg/round"
)

// FileStore keeps one JSON file per round in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to [DefaultDir].
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, storeErr(err, "locate round directory")
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, storeErr(err, "create round dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns $XDG_DATA_HOME/ghostleg/rounds, falling back to
// ~/.local/share/ghostleg/rounds.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "ghostleg", "rounds"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "ghostleg", "rounds"), nil
}

func (s *FileStore) roundPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (r *round.Round, err error) {
	defer func() { observeLoad(ctx, "file", id, err) }()
	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.roundPath(id), id)
}

func (s *FileStore) read(path, id string) (*round.Round, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, storeErr(err, "read round file")
	}

	var r round.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, storeErr(err, "parse round %s", id)
	}
	return loaded(id, &r)
}

func (s *FileStore) Put(ctx context.Context, r *round.Round) (err error) {
	defer func() { observeSave(ctx, "file", r.ID, err) }()
	if err := checkID(r.ID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return storeErr(err, "marshal round")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// write then rename so readers never see a partial file
	tmp, err := os.CreateTemp(s.baseDir, ".round-*")
	if err != nil {
		return storeErr(err, "create round file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storeErr(err, "write round file")
	}
	if err := tmp.Close(); err != nil {
		return storeErr(err, "write round file")
	}
	if err := os.Rename(tmp.Name(), s.roundPath(r.ID)); err != nil {
		return storeErr(err, "write round file")
	}
	return nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, storeErr(err, "read round dir")
	}

	out := []Summary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := name[:len(name)-len(".json")]
		if checkID(id) != nil {
			continue
		}
		r, err := s.read(filepath.Join(s.baseDir, name), id)
		if err != nil {
			observeLoad(ctx, "file", id, err)
			continue
		}
		out = append(out, Summarize(r))
	}
	return newestFirst(out, limit), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observeDelete(ctx, "file", id, err) }()
	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.roundPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return storeErr(err, "remove round file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the round files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
