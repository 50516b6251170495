// Package snapshot keeps a history of navigation trees in SQLite and
// computes differences between them.
package snapshot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

// ErrNotFound is returned when a snapshot id is unknown or the store is empty.
var ErrNotFound = errors.NotFoundError("snapshot not found").Build()

// Snapshot is one stored navigation tree.
type Snapshot struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Hash      string     `json:"hash"`
	Nodes     int        `json:"nodes"`
	CreatedAt time.Time  `json:"created_at"`
	Root      *menu.Node `json:"root,omitempty"`
}

// Store persists snapshots in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the snapshot database at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "open snapshot database").WithContext("path", path).Build()
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStorage, "initialize snapshot schema").WithContext("path", path).Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		hash TEXT NOT NULL,
		nodes INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		tree BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_hash ON snapshots(hash);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Hash returns the content hash of a tree: sha256 over its compact JSON.
func Hash(root *menu.Node) (string, error) {
	data, err := encodeTree(root)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func encodeTree(root *menu.Node) ([]byte, error) {
	if err := menu.Validate(root); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(root); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "encode snapshot").Build()
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save stores root as a new snapshot.
func (s *Store) Save(ctx context.Context, source string, root *menu.Node) (*Snapshot, error) {
	data, err := encodeTree(root)
	if err != nil {
		return nil, err
	}
	stats, err := menu.Summarize(root)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Source:    source,
		Hash:      hex.EncodeToString(sum[:]),
		Nodes:     stats.Nodes,
		CreatedAt: time.Now().UTC(),
		Root:      root.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO snapshots (id, source, hash, nodes, created_at, tree) VALUES (?, ?, ?, ?, ?, ?)",
		snap.ID, snap.Source, snap.Hash, snap.Nodes, snap.CreatedAt.UnixNano(), data,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "insert snapshot").Build()
	}
	slog.Debug("Saved navigation snapshot", logfields.SnapshotID(snap.ID), logfields.Nodes(snap.Nodes))
	return snap, nil
}

// SaveIfChanged stores root unless the latest snapshot has the same content.
// The returned bool reports whether a new snapshot was written.
func (s *Store) SaveIfChanged(ctx context.Context, source string, root *menu.Node) (*Snapshot, bool, error) {
	hash, err := Hash(root)
	if err != nil {
		return nil, false, err
	}
	latest, err := s.Latest(ctx)
	switch {
	case err == nil && latest.Hash == hash:
		return latest, false, nil
	case err != nil && !errors.HasCategory(err, errors.CategoryNotFound):
		return nil, false, err
	}
	snap, err := s.Save(ctx, source, root)
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

const selectColumns = "SELECT id, source, hash, nodes, created_at, tree FROM snapshots"

// Get loads a snapshot by id.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	snap, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound(err, id)
	}
	return snap, nil
}

// Latest loads the most recently saved snapshot.
func (s *Store) Latest(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, selectColumns+" ORDER BY seq DESC LIMIT 1")
	snap, err := scanSnapshot(row)
	if err != nil {
		return nil, notFound(err, "")
	}
	return snap, nil
}

// List returns snapshot metadata, newest first, without trees. A limit of
// zero or less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, source, hash, nodes, created_at FROM snapshots ORDER BY seq DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "query snapshots").Build()
	}
	defer func() { _ = rows.Close() }()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var created int64
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.Hash, &snap.Nodes, &created); err != nil {
			return nil, errors.WrapError(err, errors.CategoryStorage, "scan snapshot").Build()
		}
		snap.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "iterate snapshots").Build()
	}
	return out, nil
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	var created int64
	var tree []byte
	if err := row.Scan(&snap.ID, &snap.Source, &snap.Hash, &snap.Nodes, &created, &tree); err != nil {
		return nil, err
	}
	snap.CreatedAt = time.Unix(0, created).UTC()
	snap.Root = &menu.Node{}
	if err := json.Unmarshal(tree, snap.Root); err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "decode stored tree").WithContext("snapshot_id", snap.ID).Build()
	}
	return &snap, nil
}

func notFound(err error, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		if id == "" {
			return ErrNotFound
		}
		return ErrNotFound.WithContext("snapshot_id", id)
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}
	return errors.WrapError(err, errors.CategoryStorage, "load snapshot").Build()
}
