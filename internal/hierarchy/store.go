package hierarchy

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Store persists the hierarchy graph as an edge list in SQLite, so repeat
// runs skip the relationship table entirely. No snapshot fingerprint is
// recorded: when the relationship export changes, the operator must delete
// the cache file.
type Store struct {
	path string
	db   *sql.DB
}

func OpenStore(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("graph cache path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("graph cache path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create graph cache directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open graph cache %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping graph cache %q: %w", cleanPath, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize graph cache schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS edges (
  child_id  INTEGER NOT NULL,
  parent_id INTEGER NOT NULL,
  PRIMARY KEY (child_id, parent_id)
) WITHOUT ROWID;
`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

// Empty reports whether the cache holds no edges yet. A fresh or truncated
// cache file counts as a miss.
func (s *Store) Empty() (bool, error) {
	var exists int
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM edges)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("probe graph cache: %w", err)
	}
	return exists == 0, nil
}

// Save replaces the cached edge list with the graph's edges, in one
// transaction. Written once after a fresh build, never mutated in place.
func (s *Store) Save(g *Graph) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin graph cache save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM edges`); err != nil {
		return fmt.Errorf("clear graph cache: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO edges (child_id, parent_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare edge insert: %w", err)
	}
	defer stmt.Close()

	for _, edge := range g.Edges() {
		if _, err := stmt.Exec(edge.ChildID, edge.ParentID); err != nil {
			return fmt.Errorf("insert edge %d->%d: %w", edge.ChildID, edge.ParentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit graph cache save: %w", err)
	}
	return nil
}

// Load rebuilds the graph from the cached edge list.
func (s *Store) Load() (*Graph, error) {
	rows, err := s.db.Query(`SELECT child_id, parent_id FROM edges`)
	if err != nil {
		return nil, fmt.Errorf("read graph cache: %w", err)
	}
	defer rows.Close()

	g := NewGraph()
	for rows.Next() {
		var child, parent int64
		if err := rows.Scan(&child, &parent); err != nil {
			return nil, fmt.Errorf("scan cached edge: %w", err)
		}
		g.AddEdge(child, parent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate graph cache: %w", err)
	}

	g.publishSize()
	return g, nil
}
