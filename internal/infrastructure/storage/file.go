package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,100}$`)

// FileStore keeps one <key>.json file per document under a directory.
// Each file is replaced by writing a temp file and renaming it over the old one.
type FileStore struct {
	mu     sync.Mutex
	dir    string
	closed bool
	rename func(oldpath, newpath string) error
}

// NewFileStore creates dir when missing
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir, rename: os.Rename}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return b, true, nil
}

func (s *FileStore) Write(ctx context.Context, key string, value []byte) error {
	return s.WriteBatch(ctx, []domainRepo.KeyValue{{Key: key, Value: value}})
}

// previous is what a target held before a batch touched it
type previous struct {
	existed bool
	value   []byte
}

// WriteBatch stages every entry in a temp file before renaming any of them.
// When a rename fails, targets already replaced get their previous contents
// back, so a failed batch leaves all documents as they were.
func (s *FileStore) WriteBatch(ctx context.Context, entries []domainRepo.KeyValue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		p, err := s.path(e.Key)
		if err != nil {
			return err
		}
		paths[i] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	olds := make([]previous, len(entries))
	for i, p := range paths {
		b, err := os.ReadFile(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", entries[i].Key, err)
		default:
			olds[i] = previous{existed: true, value: b}
		}
	}

	temps := make([]string, 0, len(entries))
	cleanup := func() {
		for _, t := range temps {
			_ = os.Remove(t)
		}
	}

	for _, e := range entries {
		tmp, err := writeTemp(s.dir, e.Key, e.Value)
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", e.Key, err)
		}
		temps = append(temps, tmp)
	}

	for i, tmp := range temps {
		if err := s.rename(tmp, paths[i]); err != nil {
			err = fmt.Errorf("failed to replace %s: %w", entries[i].Key, err)
			temps = temps[i:]
			cleanup()
			return errors.Join(err, s.restore(entries[:i], paths[:i], olds[:i]))
		}
	}
	return syncDir(s.dir)
}

// restore puts back the previous contents of targets replaced by a failed batch
func (s *FileStore) restore(entries []domainRepo.KeyValue, paths []string, olds []previous) error {
	var errs []error
	for i := len(paths) - 1; i >= 0; i-- {
		if !olds[i].existed {
			if err := os.Remove(paths[i]); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("failed to roll back %s: %w", entries[i].Key, err))
			}
			continue
		}
		tmp, err := writeTemp(s.dir, entries[i].Key, olds[i].value)
		if err == nil {
			if err = s.rename(tmp, paths[i]); err != nil {
				_ = os.Remove(tmp)
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to roll back %s: %w", entries[i].Key, err))
		}
	}
	errs = append(errs, syncDir(s.dir))
	return errors.Join(errs...)
}

// syncDir flushes the directory entries so completed renames survive a crash
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open storage directory: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("failed to sync storage directory: %w", err)
	}
	return nil
}

func writeTemp(dir, key string, value []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+key+"-*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
