package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists a whole collection.
type Store interface {
	Load(ctx context.Context) (*Accounts, error)
	Save(ctx context.Context, l *Accounts) error
}

// FileStore stores the collection as a JSON file.
type FileStore struct{ Path string }

func (s FileStore) Load(_ context.Context) (*Accounts, error) { return Load(s.Path) }

func (s FileStore) Save(_ context.Context, l *Accounts) error { return Save(s.Path, l) }

// Load reads a ledger file. The error wraps fs.ErrNotExist if there is no
// such file.
func Load(path string) (*Accounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	l, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file %q: %w", path, err)
	}
	return l, nil
}

// LoadOrNew is like Load but returns an empty collection if the file does
// not exist.
func LoadOrNew(path string) (l *Accounts, created bool, err error) {
	l, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), true, nil
	}
	return l, false, err
}

// Save writes the ledger file. The content is written to a temporary file
// renamed over path, so the previous version survives a failed write.
func Save(path string, l *Accounts) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op once renamed

	if err := Encode(f, l); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing ledger file %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error replacing ledger file %q: %w", path, err)
	}
	return nil
}
