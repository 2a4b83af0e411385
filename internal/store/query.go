package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// OpenReadOnly opens an existing warehouse snapshot for querying. The scoring
// harness uses this so a bad gold query can never mutate the snapshot.
func OpenReadOnly(path string) (*Warehouse, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, eris.Wrapf(err, "store: open %s read-only", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, eris.Wrapf(err, "store: ping %s", path)
	}
	return &Warehouse{db: db, path: path}, nil
}

// Result is one executed query: column names plus rows of scanned values.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Scalar returns the single value of a one-row one-column result.
func (r *Result) Scalar() (any, bool) {
	if len(r.Rows) != 1 || len(r.Rows[0]) != 1 {
		return nil, false
	}
	return r.Rows[0][0], true
}

// Query executes an arbitrary SQL query and scans every row.
func (w *Warehouse) Query(ctx context.Context, query string) (*Result, error) {
	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "store: query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "store: columns")
	}
	res := &Result{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrap(err, "store: scan")
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: rows")
	}
	return res, nil
}

// TableCounts returns row counts for the given tables, for post-load
// verification and the generate command's summary output.
func (w *Warehouse) TableCounts(ctx context.Context, tables []string) (map[string]int, error) {
	out := make(map[string]int, len(tables))
	for _, t := range tables {
		var n int
		if err := w.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "store: count %s", t)
		}
		out[t] = n
	}
	return out, nil
}
