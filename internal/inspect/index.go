// Package inspect provides a SQLite-backed index built from a persisted
// map file, for ad hoc range and item queries that do not belong on the
// library's own hot path: a sqlx connection opened with WAL and a busy
// timeout, a migrated schema, and prepared-statement bulk inserts inside
// a single transaction.
package inspect

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/item"
)

// Index is a queryable SQLite mirror of a map's materialized patches and
// items. It has no relationship to the map's own correctness — it exists
// purely so a caller can run ad hoc SQL against a snapshot without
// walking the in-memory store by hand.
type Index struct {
	conn *sqlx.DB
	id   uuid.UUID
}

// Open opens or creates a SQLite database at path and migrates its schema.
func Open(path string) (*Index, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("inspect: open db: %w", err)
	}

	idx := &Index{conn: conn, id: uuid.New()}
	if err := idx.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("inspect: migrate: %w", err)
	}

	slog.Info("inspection index opened", "run_id", idx.id, "path", path)
	return idx, nil
}

// Close closes the underlying database connection.
func (idx *Index) Close() error {
	return idx.conn.Close()
}

// ID returns this index's run identifier, logged for correlating
// separate inspection runs against the same database file.
func (idx *Index) ID() uuid.UUID { return idx.id }

func (idx *Index) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patches (
		patch_x INTEGER NOT NULL,
		patch_y INTEGER NOT NULL,
		fixed INTEGER NOT NULL,
		item_count INTEGER NOT NULL,
		PRIMARY KEY (patch_x, patch_y)
	);

	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_type INTEGER NOT NULL,
		loc_x INTEGER NOT NULL,
		loc_y INTEGER NOT NULL,
		creation_time INTEGER NOT NULL,
		deletion_time INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_items_loc ON items(loc_x, loc_y);
	CREATE INDEX IF NOT EXISTS idx_items_type ON items(item_type);
	`
	_, err := idx.conn.Exec(schema)
	return err
}

// PatchRecord is one row of the patches table.
type PatchRecord struct {
	PatchX    int64 `db:"patch_x"`
	PatchY    int64 `db:"patch_y"`
	Fixed     bool  `db:"fixed"`
	ItemCount int   `db:"item_count"`
}

// IndexPatches replaces the patches and items tables with the contents
// of patches, keyed by their patch positions. It performs a full
// replace inside a single transaction.
func (idx *Index) IndexPatches(patches map[geom.Position][]item.Item, fixed map[geom.Position]bool) error {
	tx, err := idx.conn.Beginx()
	if err != nil {
		return fmt.Errorf("inspect: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM patches"); err != nil {
		return fmt.Errorf("inspect: clear patches: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("inspect: clear items: %w", err)
	}

	patchStmt, err := tx.Preparex(`INSERT INTO patches (patch_x, patch_y, fixed, item_count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("inspect: prepare patch insert: %w", err)
	}
	defer patchStmt.Close()

	itemStmt, err := tx.Preparex(`INSERT INTO items (item_type, loc_x, loc_y, creation_time, deletion_time) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("inspect: prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	totalItems := 0
	for pos, items := range patches {
		if _, err := patchStmt.Exec(pos.X, pos.Y, fixed[pos], len(items)); err != nil {
			return fmt.Errorf("inspect: insert patch %v: %w", pos, err)
		}
		for _, it := range items {
			if _, err := itemStmt.Exec(it.Type, it.Location.X, it.Location.Y, it.CreationTime, it.DeletionTime); err != nil {
				return fmt.Errorf("inspect: insert item at %v: %w", it.Location, err)
			}
			totalItems++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("inspect: commit: %w", err)
	}

	slog.Info("indexed map snapshot",
		"run_id", idx.id,
		"patches", humanize.Comma(int64(len(patches))),
		"items", humanize.Comma(int64(totalItems)),
	)
	return nil
}

// Patches returns every indexed patch record, ordered by position.
func (idx *Index) Patches() ([]PatchRecord, error) {
	var records []PatchRecord
	err := idx.conn.Select(&records, "SELECT patch_x, patch_y, fixed, item_count FROM patches ORDER BY patch_x, patch_y")
	if err != nil {
		return nil, fmt.Errorf("inspect: select patches: %w", err)
	}
	return records, nil
}

// ItemsByType returns the count of indexed items for each item type.
func (idx *Index) ItemsByType() (map[uint32]int, error) {
	rows, err := idx.conn.Query("SELECT item_type, COUNT(*) FROM items GROUP BY item_type")
	if err != nil {
		return nil, fmt.Errorf("inspect: select item counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint32]int)
	for rows.Next() {
		var t uint32
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("inspect: scan item count: %w", err)
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// ItemsInRange returns every indexed item within the closed rectangle
// [bl, tr].
func (idx *Index) ItemsInRange(bl, tr geom.Position) ([]item.Item, error) {
	type row struct {
		ItemType     uint32 `db:"item_type"`
		LocX         int64  `db:"loc_x"`
		LocY         int64  `db:"loc_y"`
		CreationTime uint64 `db:"creation_time"`
		DeletionTime uint64 `db:"deletion_time"`
	}
	var rows []row
	err := idx.conn.Select(&rows,
		`SELECT item_type, loc_x, loc_y, creation_time, deletion_time FROM items
		 WHERE loc_x BETWEEN ? AND ? AND loc_y BETWEEN ? AND ?`,
		bl.X, tr.X, bl.Y, tr.Y,
	)
	if err != nil {
		return nil, fmt.Errorf("inspect: select items in range: %w", err)
	}

	items := make([]item.Item, len(rows))
	for i, r := range rows {
		items[i] = item.Item{
			Type:         r.ItemType,
			Location:     geom.Position{X: r.LocX, Y: r.LocY},
			CreationTime: r.CreationTime,
			DeletionTime: r.DeletionTime,
		}
	}
	return items, nil
}
