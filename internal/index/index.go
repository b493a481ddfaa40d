// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists a rename mapping into a SQLite database so other
// tooling can look up where a source path landed without re-running the
// restructure.
package index

import (
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

const schema = `CREATE TABLE IF NOT EXISTS renames (
	source_path TEXT PRIMARY KEY,
	dest_path   TEXT NOT NULL,
	kind        TEXT NOT NULL
)`

// Write creates or replaces the rename index at path with the contents of m.
func Write(path string, m *types.Mapping) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening index database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating index schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting index transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO renames (source_path, dest_path, kind) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing index insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range flatten(m) {
		if _, err := stmt.Exec(e.src, e.dest, e.kind); err != nil {
			tx.Rollback()
			return fmt.Errorf("indexing %s: %w", e.src, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Lookup returns the destination recorded for a source path in an index
// database written by Write.
func Lookup(path, sourcePath string) (dest string, kind types.EntryKind, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return "", "", fmt.Errorf("opening index database: %w", err)
	}
	defer db.Close()

	var k string
	row := db.QueryRow(`SELECT dest_path, kind FROM renames WHERE source_path = ?`, sourcePath)
	if err := row.Scan(&dest, &k); err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("no index entry for %s", sourcePath)
		}
		return "", "", fmt.Errorf("querying index: %w", err)
	}
	return dest, types.EntryKind(k), nil
}

type indexEntry struct {
	src, dest string
	kind      types.EntryKind
}

func flatten(m *types.Mapping) []indexEntry {
	entries := make([]indexEntry, 0, m.Len())
	for src, dest := range m.Pages {
		entries = append(entries, indexEntry{src, dest, types.KindPage})
	}
	for src, dest := range m.Attachments {
		entries = append(entries, indexEntry{src, dest, types.KindAttachment})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].src < entries[j].src })
	return entries
}
