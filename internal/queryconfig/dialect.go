package queryconfig

// Dialect captures the handful of ways SQLite- and MySQL-compatible
// backends disagree that the query executor must paper over (spec.md
// §4.2, §4.3): how to recover the id of the row just inserted, how
// booleans are spelled as literals, and whether IF NOT EXISTS is
// accepted on CREATE statements. The schema_version a fresh database
// starts at is not a Dialect concern; it comes from the QueryConfig
// bundle.
type Dialect interface {
	// Name identifies the dialect for logging and template selection.
	Name() string

	// TrueLiteral / FalseLiteral are the SQL literal spellings of a
	// boolean column value in this dialect.
	TrueLiteral() string
	FalseLiteral() string

	// LastInsertIDQuery is the statement used to recover the id of the
	// row just inserted, when the MetadataSource's own LastInsertID
	// accessor is not used directly (e.g. inside a multi-statement
	// template).
	LastInsertIDQuery() string

	// SupportsIfNotExists reports whether "CREATE TABLE IF NOT EXISTS"
	// and "CREATE INDEX IF NOT EXISTS" are accepted by this dialect
	// (MySQL lacks the latter until 8.0 and the migrations avoid it
	// unconditionally).
	SupportsIfNotExists() bool
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string               { return "sqlite" }
func (sqliteDialect) TrueLiteral() string         { return "1" }
func (sqliteDialect) FalseLiteral() string        { return "0" }
func (sqliteDialect) LastInsertIDQuery() string   { return "SELECT last_insert_rowid();" }
func (sqliteDialect) SupportsIfNotExists() bool   { return true }

type mysqlDialect struct{}

func (mysqlDialect) Name() string             { return "mysql" }
func (mysqlDialect) TrueLiteral() string      { return "TRUE" }
func (mysqlDialect) FalseLiteral() string     { return "FALSE" }
func (mysqlDialect) LastInsertIDQuery() string { return "SELECT LAST_INSERT_ID();" }
func (mysqlDialect) SupportsIfNotExists() bool { return false }

// SQLite is the Dialect for SQLite-compatible backends.
var SQLite Dialect = sqliteDialect{}

// MySQL is the Dialect for MySQL-compatible backends.
var MySQL Dialect = mysqlDialect{}

// DialectByName resolves a dialect from its configuration key, used when
// a QueryConfig bundle is selected by name rather than by value.
func DialectByName(name string) (Dialect, bool) {
	switch name {
	case "sqlite":
		return SQLite, true
	case "mysql":
		return MySQL, true
	default:
		return nil, false
	}
}
