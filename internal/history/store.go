package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one composed prompt kept for later reuse.
type Record struct {
	ID        string
	Prompt    string
	Seed      int64
	Separator string
	CreatedAt time.Time
}

// Store persists composed prompts using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new SQLite-backed history store at the given path
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

// init creates the prompts table if it doesn't exist
func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS prompts (
			id          TEXT PRIMARY KEY,
			prompt      TEXT NOT NULL,
			seed        INTEGER NOT NULL DEFAULT 0,
			separator   TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_prompts_created ON prompts(created_at);
	`)
	return err
}

// Add stores a composed prompt and returns the stored record.
func (s *Store) Add(prompt string, seed int64, separator string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec := &Record{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Seed:      seed,
		Separator: separator,
		CreatedAt: now,
	}

	_, err := s.db.Exec(`
		INSERT INTO prompts (id, prompt, seed, separator, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.Prompt, rec.Seed, rec.Separator, now.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// List returns the most recent records, newest first.
func (s *Store) List(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(`
		SELECT id, prompt, seed, separator, created_at
		FROM prompts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
}

// Search returns records whose prompt contains the keyword, newest first.
func (s *Store) Search(keyword string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.query(`
		SELECT id, prompt, seed, separator, created_at
		FROM prompts
		WHERE prompt LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, "%"+keyword+"%", limit)
}

func (s *Store) query(q string, args ...any) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		var createdAt string

		if err := rows.Scan(&rec.ID, &rec.Prompt, &rec.Seed, &rec.Separator, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// Prune deletes records older than the retention window and returns how many
// were removed.
func (s *Store) Prune(retentionDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Format(time.RFC3339)

	res, err := s.db.Exec(`DELETE FROM prompts WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
