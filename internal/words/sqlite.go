// internal/words/sqlite.go
//
// SQLite dictionary source.
// Reads a single-column word table (column "word") in rowid order.
// The database is opened read-only with a busy timeout so a dictionary that
// another process is writing does not fail the load.

package words

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// openDB opens an existing SQLite database read-only.
func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

// readWordTable returns the normalized words of length n stored in table.
func readWordTable(ctx context.Context, db *sql.DB, table string, n int) ([]string, error) {
	if !validIdent(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	rows, err := db.QueryContext(ctx, `SELECT word FROM "`+table+`" ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		raw = append(raw, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := normalize(raw, n)
	log.Debug().Str("table", table).Int("rows", len(raw)).Int("kept", len(out)).Msg("sqlite dictionary")
	return out, nil
}

// validIdent reports whether s is a plain SQL identifier (letters, digits, underscore).
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
