package sqlitesource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CandiedCode/ml-metadata/pkg/types"
)

func openTestSource(t *testing.T) *Source {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExecuteQueryDDLAndSelect(t *testing.T) {
	s := openTestSource(t)

	_, err := s.ExecuteQuery("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);")
	require.NoError(t, err)

	rs, err := s.ExecuteQuery("INSERT INTO widgets (name) VALUES ('gizmo');")
	require.NoError(t, err)
	assert.True(t, rs.Empty())

	id, err := s.LastInsertID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rs, err = s.ExecuteQuery("SELECT id, name FROM widgets;")
	require.NoError(t, err)
	require.Len(t, rs.Records, 1)
	assert.Equal(t, []string{"id", "name"}, rs.ColumnNames)
	val, ok := rs.Value(0, "name")
	require.True(t, ok)
	assert.Equal(t, "gizmo", val)
}

func TestExecuteQueryNullSentinel(t *testing.T) {
	s := openTestSource(t)
	_, err := s.ExecuteQuery("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);")
	require.NoError(t, err)
	_, err = s.ExecuteQuery("INSERT INTO widgets (id) VALUES (1);")
	require.NoError(t, err)

	rs, err := s.ExecuteQuery("SELECT name FROM widgets WHERE id = 1;")
	require.NoError(t, err)
	val, ok := rs.Value(0, "name")
	require.True(t, ok)
	assert.Equal(t, types.NullSentinel, val)
}

func TestTransactionCommit(t *testing.T) {
	s := openTestSource(t)
	_, err := s.ExecuteQuery("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);")
	require.NoError(t, err)

	require.NoError(t, s.Begin())
	_, err = s.ExecuteQuery("INSERT INTO widgets (name) VALUES ('a');")
	require.NoError(t, err)
	require.NoError(t, s.Commit())

	rs, err := s.ExecuteQuery("SELECT name FROM widgets;")
	require.NoError(t, err)
	assert.Len(t, rs.Records, 1)
}

func TestTransactionRollback(t *testing.T) {
	s := openTestSource(t)
	_, err := s.ExecuteQuery("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);")
	require.NoError(t, err)

	require.NoError(t, s.Begin())
	_, err = s.ExecuteQuery("INSERT INTO widgets (name) VALUES ('a');")
	require.NoError(t, err)
	require.NoError(t, s.Rollback())

	rs, err := s.ExecuteQuery("SELECT name FROM widgets;")
	require.NoError(t, err)
	assert.Empty(t, rs.Records)
}

func TestBeginTwiceFails(t *testing.T) {
	s := openTestSource(t)
	require.NoError(t, s.Begin())
	defer s.Rollback()

	err := s.Begin()
	assert.True(t, types.IsKind(err, types.FailedPrecondition))
}

func TestCommitWithoutBeginFails(t *testing.T) {
	s := openTestSource(t)
	err := s.Commit()
	assert.True(t, types.IsKind(err, types.FailedPrecondition))
}

func TestEscapeString(t *testing.T) {
	s := openTestSource(t)
	assert.Equal(t, "'it''s'", s.EscapeString("it's"))
}
