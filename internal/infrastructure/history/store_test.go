package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/jarvis-go/internal/domain"
)

func TestFileStoreTrimsToMaxEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".jarvis_history.json")
	store := NewFileStore(path, 5)

	for i := 0; i < 12; i++ {
		entry := domain.NewHistoryEntry(fmt.Sprintf("cmd %d", i), domain.IntentHelp, domain.ActionShowHelp, domain.Succeeded("ok"))
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	var onDisk []domain.HistoryEntry
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("history file is not a JSON array: %v", err)
	}
	if len(onDisk) != 5 {
		t.Fatalf("expected 5 entries on disk, got %d", len(onDisk))
	}
	if onDisk[0].Command != "cmd 7" || onDisk[4].Command != "cmd 11" {
		t.Fatalf("unexpected retained window: first=%s last=%s", onDisk[0].Command, onDisk[4].Command)
	}
}

func TestFileStoreReloadAfterRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")

	first := NewFileStore(path, 100)
	if err := first.Record(ctx, domain.NewHistoryEntry("delete cats.txt", domain.IntentFileManagement, domain.ActionDeleteFile, domain.Failed("OK, action cancelled."))); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	second := NewFileStore(path, 100)
	entries, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Success || entries[0].Command != "delete cats.txt" || entries[0].ID == "" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.json"), 10)
	entries, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d", len(entries))
	}
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".jarvis_history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path, 10)
	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, domain.NewHistoryEntry(fmt.Sprintf("cmd %d", i), domain.IntentHelp, domain.ActionShowHelp, domain.Succeeded("ok"))); err != nil {
			t.Fatalf("Record() #%d error = %v", i, err)
		}
	}

	entries, err := NewFileStore(path, 10).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 3 || entries[0].Command != "cmd 0" {
		t.Fatalf("expected 3 fresh entries, got %+v", entries)
	}
	corrupt, err := os.ReadFile(path + ".corrupt")
	if err != nil {
		t.Fatalf("corrupt file not kept aside: %v", err)
	}
	if string(corrupt) != "{not json" {
		t.Fatalf("corrupt copy = %q", corrupt)
	}
}

func TestFileStoreSearchAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "h.json"), 10)
	for _, cmd := range []string{"open vscode", "search golang", "open firefox"} {
		if err := store.Record(ctx, domain.NewHistoryEntry(cmd, domain.IntentSystemControl, domain.ActionOpenApp, domain.Succeeded("done"))); err != nil {
			t.Fatal(err)
		}
	}

	found, err := store.Search(ctx, "OPEN", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 2 || found[0].Command != "open firefox" {
		t.Fatalf("Search returned %+v", found)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected history file removed, stat err = %v", err)
	}
}

func TestNewHistoryEntryTruncatesResult(t *testing.T) {
	entry := domain.NewHistoryEntry("x", domain.IntentHelp, domain.ActionShowHelp, domain.Succeeded(strings.Repeat("r", 250)))
	if len(entry.ResultExcerpt) != domain.HistoryExcerptLength {
		t.Fatalf("excerpt length = %d", len(entry.ResultExcerpt))
	}
	if !entry.Success || entry.Timestamp.IsZero() {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestSQLiteStoreNeverExceedsMax(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), 3)
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	defer store.Close()

	for i := 0; i < 10; i++ {
		if err := store.Record(ctx, domain.NewHistoryEntry(fmt.Sprintf("cmd %d", i), domain.IntentHelp, domain.ActionShowHelp, domain.Succeeded("ok"))); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		entries, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(entries) > 3 {
			t.Fatalf("history grew to %d entries", len(entries))
		}
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Command != "cmd 7" || entries[2].Command != "cmd 9" {
		t.Fatalf("unexpected retained rows %+v", entries)
	}

	found, err := store.Search(ctx, "cmd 8", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 1 || !found[0].Success || found[0].Intent != domain.IntentHelp {
		t.Fatalf("Search returned %+v", found)
	}
}
