// Package metadatasource defines the collaborator contract the query
// executor drives but never constructs: a single open connection to a
// concrete SQL backend (spec.md §1, §5). The executor assumes it is
// single-threaded-per-instance and that MetadataSource outlives it;
// transaction boundaries are owned by the caller of the executor, never
// by MetadataSource itself. The executor's InitMetadataSource and
// DowngradeMetadataSource are the exceptions: each begins and ends its
// own transaction.
//
// Grounded on _examples/other_examples/oriys-nova__db.go's Executor/Tx
// abstraction, narrowed to the handful of primitives the query executor
// actually needs (text-in, RecordSet-out, plus the three transaction
// verbs and the two dialect-dependent escape hatches).
package metadatasource

import "github.com/CandiedCode/ml-metadata/pkg/types"

// MetadataSource is the externally-supplied SQL collaborator. Its
// concrete construction, connection pooling, and wire-level dialect are
// entirely out of scope for this module (spec.md §1 Non-goals); only
// this contract is in scope.
type MetadataSource interface {
	// ExecuteQuery runs sqlText and returns its result set. For
	// statements with no rows (INSERT/UPDATE/DELETE/DDL), the returned
	// RecordSet is empty (zero ColumnNames, zero Records).
	ExecuteQuery(sqlText string) (*types.RecordSet, error)

	// Begin starts a transaction. Calling Begin while one is already
	// open is a FailedPrecondition error.
	Begin() error

	// Commit ends the current transaction, persisting its effects.
	// Calling Commit with no open transaction is a FailedPrecondition
	// error.
	Commit() error

	// Rollback ends the current transaction, discarding its effects.
	// Calling Rollback with no open transaction is a FailedPrecondition
	// error.
	Rollback() error

	// LastInsertID returns the server-assigned id of the most recent
	// successful INSERT on this connection. Its meaning outside that
	// window is undefined, matching SQLite's last_insert_rowid and
	// MySQL's LAST_INSERT_ID() semantics the Dialect must reconcile.
	LastInsertID() (int64, error)

	// EscapeString renders s as a safely-quoted SQL string literal in
	// the backend's dialect. The binder uses this for every string
	// value; it is never used to build identifiers.
	EscapeString(s string) string
}
