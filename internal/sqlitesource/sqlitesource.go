// Package sqlitesource is a reference MetadataSource implementation
// backed by database/sql and modernc.org/sqlite (spec.md §1: the
// concrete driver is a collaborator, not part of the core, but the
// module still ships one reference backend for tests and examples to
// drive the executor against).
//
// Grounded on the teacher's internal/sqlite/backend.go Attach/Open/Exec
// pattern: a single *sql.DB with a mutex around every call. Open runs no
// schema; creating the tables is left to the query executor's
// InitMetadataSource.
package sqlitesource

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// Source is a single-connection SQLite-backed MetadataSource. It is not
// safe for concurrent use by multiple goroutines, matching the query
// executor's single-threaded-per-instance contract (spec.md §5).
type Source struct {
	mu   sync.Mutex
	db   *sql.DB
	tx   *sql.Tx
	path string
}

// Open opens (creating if absent) a SQLite database file at path. Use
// ":memory:" for an ephemeral in-process database, the common case in
// tests.
func Open(path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitesource: open %q: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = OFF;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitesource: set pragma: %w", err)
	}
	return &Source{db: db, path: path}, nil
}

// Close releases the underlying connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// querier returns whatever should run the next statement: the open
// transaction if one exists, else the raw *sql.DB.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
}

func (s *Source) querier() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// ExecuteQuery runs sqlText, which already has every value spliced in
// by internal/binder, and returns a RecordSet. Statements that return no
// rows produce an empty RecordSet rather than an error.
func (s *Source) ExecuteQuery(sqlText string) (*types.RecordSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(strings.ToUpper(sqlText))
	if strings.HasPrefix(trimmed, "SELECT") || strings.HasPrefix(trimmed, "PRAGMA") {
		return s.query(sqlText)
	}
	if _, err := s.querier().Exec(sqlText); err != nil {
		return nil, fmt.Errorf("sqlitesource: exec: %w", err)
	}
	return &types.RecordSet{}, nil
}

func (s *Source) query(sqlText string) (*types.RecordSet, error) {
	rows, err := s.querier().Query(sqlText)
	if err != nil {
		return nil, fmt.Errorf("sqlitesource: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlitesource: columns: %w", err)
	}

	rs := &types.RecordSet{ColumnNames: cols}
	scanTargets := make([]any, len(cols))
	scanValues := make([]sql.NullString, len(cols))
	for i := range scanValues {
		scanTargets[i] = &scanValues[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("sqlitesource: scan: %w", err)
		}
		rec := types.Record{Values: make([]string, len(cols))}
		for i, v := range scanValues {
			if v.Valid {
				rec.Values[i] = v.String
			} else {
				rec.Values[i] = types.NullSentinel
			}
		}
		rs.Records = append(rs.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitesource: rows: %w", err)
	}
	return rs, nil
}

// Begin starts a transaction. Calling it while one is already open
// returns a FailedPrecondition error (spec.md §5: transactions are
// caller-managed, and nesting is a caller contract violation).
func (s *Source) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx != nil {
		return types.NewFailedPrecondition("sqlitesource: transaction already open")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return types.NewInternal("sqlitesource: begin", err)
	}
	s.tx = tx
	return nil
}

// Commit ends the current transaction.
func (s *Source) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return types.NewFailedPrecondition("sqlitesource: no open transaction")
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return types.NewInternal("sqlitesource: commit", err)
	}
	return nil
}

// Rollback ends the current transaction, discarding its effects.
func (s *Source) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return types.NewFailedPrecondition("sqlitesource: no open transaction")
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return types.NewInternal("sqlitesource: rollback", err)
	}
	return nil
}

// LastInsertID returns the id of the most recently inserted row on this
// connection via SQLite's last_insert_rowid().
func (s *Source) LastInsertID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.querier().Query("SELECT last_insert_rowid();")
	if err != nil {
		return 0, fmt.Errorf("sqlitesource: last_insert_rowid: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, fmt.Errorf("sqlitesource: last_insert_rowid: no row returned")
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("sqlitesource: last_insert_rowid: scan: %w", err)
	}
	return id, rows.Err()
}

// EscapeString quotes s as a SQLite string literal, doubling embedded
// single quotes.
func (s *Source) EscapeString(str string) string {
	return "'" + strings.ReplaceAll(str, "'", "''") + "'"
}

// EscapeIdentifier quotes name as a SQLite double-quoted identifier,
// doubling embedded double quotes, for the
// rare template that must splice in a table/column name rather than a
// value (none of the shipped templates do; kept for parity with the
// Dialect's scope).
func (s *Source) EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
