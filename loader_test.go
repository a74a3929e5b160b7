package ledger

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ledger.json")
	l := newSampleLedger(t)
	if err := Save(path, l); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if diff := cmp.Diff(l.Snapshot().Accounts, got.Snapshot().Accounts, snapshotOpts); diff != "" {
		t.Errorf("Load(Save()) mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Save() left %d files in the directory, want 1", len(entries))
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	if _, err := Load(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}
	l, created, err := LoadOrNew(path)
	if err != nil || !created || l.Len() != 0 {
		t.Errorf("LoadOrNew(missing) = %v, %v, %v; want empty, true, nil", l, created, err)
	}
}

func TestLoadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadOrNew(path); err == nil {
		t.Error("LoadOrNew(corrupted) expected an error")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s := FileStore{Path: filepath.Join(t.TempDir(), "ledger.json")}
	l := New()
	l.Add("checking", EUR)
	if err := s.Save(ctx, l); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("Len() = %d, want 1", got.Len())
	}
}
