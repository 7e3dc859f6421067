package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// FileStore keeps the newest entries in a JSON array file and rewrites it on every record.
// A file that does not decode is moved aside to <path>.corrupt and history starts empty.
type FileStore struct {
	path       string
	maxEntries int
	// Logger reports quarantined files. Optional.
	Logger ports.Logger

	mu      sync.Mutex
	entries []domain.HistoryEntry
	loaded  bool
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string, maxEntries int) *FileStore {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxHistoryEntries
	}
	return &FileStore{path: path, maxEntries: maxEntries}
}

// Record implements ports.HistoryRepository.
func (f *FileStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensureLoaded(); err != nil {
		return err
	}
	f.entries = domain.TrimHistory(append(f.entries, entry), f.maxEntries)
	return f.flush()
}

// Load returns the persisted entries, oldest first.
func (f *FileStore) Load(context.Context) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = false
	if err := f.ensureLoaded(); err != nil {
		return nil, err
	}
	return append([]domain.HistoryEntry(nil), f.entries...), nil
}

// Search returns the newest entries whose command or result contains term.
func (f *FileStore) Search(ctx context.Context, term string, limit int) ([]domain.HistoryEntry, error) {
	entries, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filterEntries(entries, term, limit), nil
}

// Clear removes the history file.
func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
	f.loaded = true
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) ensureLoaded() error {
	if f.loaded {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.entries = nil
			f.loaded = true
			return nil
		}
		return err
	}
	var entries []domain.HistoryEntry
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			if qerr := f.quarantine(err); qerr != nil {
				return qerr
			}
			entries = nil
		}
	}
	f.entries = domain.TrimHistory(entries, f.maxEntries)
	f.loaded = true
	return nil
}

// quarantine renames an undecodable history file so the next flush starts clean.
func (f *FileStore) quarantine(decodeErr error) error {
	corrupt := f.path + ".corrupt"
	if err := os.Rename(f.path, corrupt); err != nil {
		return fmt.Errorf("move corrupt history aside: %w (decode: %v)", err, decodeErr)
	}
	if f.Logger != nil {
		f.Logger.Warn("history file was corrupt, starting empty", map[string]interface{}{
			"path":  f.path,
			"moved": corrupt,
			"error": decodeErr.Error(),
		})
	}
	return nil
}

func (f *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), domain.SecureFilePermissions); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// filterEntries walks newest first and keeps up to limit matches.
func filterEntries(entries []domain.HistoryEntry, term string, limit int) []domain.HistoryEntry {
	term = strings.ToLower(term)
	var out []domain.HistoryEntry
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Command), term) &&
			!strings.Contains(strings.ToLower(e.ResultExcerpt), term) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

var _ ports.HistoryRepository = (*FileStore)(nil)
