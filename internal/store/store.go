// Package store persists the generated warehouse into a single sqlite file.
// The original layout used one schema per layer; sqlite has no schemas, so
// schema.table flattens to schema_table (core_policies,
// staging_legacy_policies_as400, gold_lob_year_summary, ...).
//
// The file is opened exclusively for writing by the generator
// (drop-and-recreate, never incremental) and reopened read-only by the
// scoring harness for each gold-query execution.
package store

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Warehouse wraps the sqlite handle used for loading.
type Warehouse struct {
	db   *sql.DB
	path string
}

// Create removes any previous snapshot at path and opens a fresh writable
// database with the full table layout.
func Create(ctx context.Context, path string) (*Warehouse, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrapf(err, "store: remove %s", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	w := &Warehouse{db: db, path: path}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "store: create tables")
	}
	return w, nil
}

func (w *Warehouse) Close() error {
	return w.db.Close()
}

// Path returns the backing file path.
func (w *Warehouse) Path() string { return w.path }

// helpers shared by the loaders

func fdate(t time.Time) string { return t.Format("2006-01-02") }

func fdatep(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func fts(t time.Time) string { return t.Format("2006-01-02T15:04:05") }

func tsp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fts(*t)
}

// placeholders renders n comma-joined ? markers for positional inserts.
func placeholders(n int) string {
	out := make([]byte, 0, 2*n)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '?')
	}
	return string(out)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intp(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
