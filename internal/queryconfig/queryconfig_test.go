package queryconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQLite(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.Dialect.Name())
	assert.NotEmpty(t, c.DDL)
	assert.NotEmpty(t, c.Queries["select_type_by_id"])
}

func TestLoadMySQL(t *testing.T) {
	c, err := Load("mysql")
	require.NoError(t, err)
	assert.Equal(t, "mysql", c.Dialect.Name())
	s, err := Load("sqlite")
	require.NoError(t, err)
	assert.Equal(t, s.SchemaVersion, c.SchemaVersion)
}

func TestLoadUnknownDialect(t *testing.T) {
	_, err := Load("postgres")
	assert.Error(t, err)
}

func TestQueryFormatsArgs(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	sql, err := c.Query("select_type_by_id", "7")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, version, type_kind, description, input_type, output_type FROM Type WHERE id = 7;", sql)
}

func TestQueryUnknownName(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	_, err = c.Query("does_not_exist")
	assert.Error(t, err)
}

func TestMigrationsFromZero(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	steps, err := c.MigrationsFrom(0)
	require.NoError(t, err)
	assert.Len(t, steps, int(c.SchemaVersion))
}

func TestMigrationsFromCurrent(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	steps, err := c.MigrationsFrom(c.SchemaVersion)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestMigrationsFromTooNew(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	_, err = c.MigrationsFrom(c.SchemaVersion + 1)
	assert.Error(t, err)
}

func TestDowngradeKnownStep(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	step, ok := c.Downgrade(9, 8)
	require.True(t, ok)
	assert.NotEmpty(t, step.Statements)
}

func TestDowngradeUnknownStep(t *testing.T) {
	c, err := Load("sqlite")
	require.NoError(t, err)
	_, ok := c.Downgrade(5, 1)
	assert.False(t, ok)
}
