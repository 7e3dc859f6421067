package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// SQLiteStore persists history in a SQLite database, trimmed to maxEntries rows.
type SQLiteStore struct {
	db         *sql.DB
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, maxEntries int) (*SQLiteStore, error) {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxHistoryEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path, maxEntries: maxEntries}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT,
		timestamp TEXT,
		command TEXT,
		intent TEXT,
		action TEXT,
		success INTEGER,
		result TEXT
	);`)
	return err
}

// Record inserts a new entry and deletes rows beyond the retention limit.
func (s *SQLiteStore) Record(ctx context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO commands
		(id, timestamp, command, intent, action, success, result)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(domain.TimestampFormat),
		entry.Command,
		string(entry.Intent),
		entry.Action,
		boolToInt(entry.Success),
		entry.ResultExcerpt,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM commands WHERE seq NOT IN (SELECT seq FROM commands ORDER BY seq DESC LIMIT ?)`,
		s.maxEntries,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns all retained entries, oldest first.
func (s *SQLiteStore) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.query(ctx, "", 0, "ASC")
}

// Search returns newest-first entries matching term.
func (s *SQLiteStore) Search(ctx context.Context, term string, limit int) ([]domain.HistoryEntry, error) {
	return s.query(ctx, term, limit, "DESC")
}

func (s *SQLiteStore) query(ctx context.Context, term string, limit int, order string) ([]domain.HistoryEntry, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, command, intent, action, success, result FROM commands")
	var args []interface{}
	if term != "" {
		builder.WriteString(" WHERE command LIKE ? OR result LIKE ?")
		args = append(args, "%"+term+"%", "%"+term+"%")
	}
	builder.WriteString(" ORDER BY seq " + order)
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			e       domain.HistoryEntry
			ts      string
			intent  string
			success int
		)
		if err := rows.Scan(&e.ID, &ts, &e.Command, &intent, &e.Action, &success, &e.ResultExcerpt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			e.Timestamp = t
		}
		e.Intent = domain.Intent(intent)
		e.Success = success == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM commands")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
