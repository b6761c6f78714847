package binder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// fakeSource is a minimal MetadataSource double exercising only
// EscapeString, the single method the binder calls.
type fakeSource struct{}

func (fakeSource) ExecuteQuery(string) (*types.RecordSet, error) { return nil, nil }
func (fakeSource) Begin() error                                  { return nil }
func (fakeSource) Commit() error                                 { return nil }
func (fakeSource) Rollback() error                                { return nil }
func (fakeSource) LastInsertID() (int64, error)                  { return 0, nil }
func (fakeSource) EscapeString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func newTestBinder() *Binder {
	return New(fakeSource{})
}

func TestBindString(t *testing.T) {
	b := newTestBinder()
	assert.Equal(t, "'hello'", b.BindString("hello"))
	assert.Equal(t, "'it''s'", b.BindString("it's"))
}

func TestBindStringPtr(t *testing.T) {
	b := newTestBinder()
	assert.Equal(t, "NULL", b.BindStringPtr(nil))
	s := "x"
	assert.Equal(t, "'x'", b.BindStringPtr(&s))
}

func TestBindInt64Ptr(t *testing.T) {
	b := newTestBinder()
	assert.Equal(t, "NULL", b.BindInt64Ptr(nil))
	v := int64(42)
	assert.Equal(t, "42", b.BindInt64Ptr(&v))
}

func TestBindBool(t *testing.T) {
	b := newTestBinder()
	assert.Equal(t, "1", b.BindBool(true, "1", "0"))
	assert.Equal(t, "0", b.BindBool(false, "1", "0"))
	assert.Equal(t, "TRUE", b.BindBool(true, "TRUE", "FALSE"))
}

func TestBindInt64List(t *testing.T) {
	b := newTestBinder()
	out, err := b.BindInt64List([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "(1, 2, 3)", out)
}

func TestBindInt64ListEmptyIsError(t *testing.T) {
	b := newTestBinder()
	_, err := b.BindInt64List(nil)
	assert.ErrorIs(t, err, types.ErrEmptyList)
}

func TestBindValueByDataType(t *testing.T) {
	b := newTestBinder()
	assert.Equal(t, "7", b.BindValue(types.IntValueOf(7)))
	assert.Equal(t, "'abc'", b.BindValue(types.StringValueOf("abc")))
	assert.Equal(t, "1.5", b.BindValue(types.DoubleValueOf(1.5)))
}

func TestBindArtifactStateNil(t *testing.T) {
	b := newTestBinder()
	assert.Equal(t, "NULL", b.BindArtifactState(nil))
	live := types.ArtifactStateLive
	assert.Equal(t, "2", b.BindArtifactState(&live))
}

func TestBindArtifactStructTypeNil(t *testing.T) {
	b := newTestBinder()
	out, err := b.BindArtifactStructType(nil)
	require.NoError(t, err)
	assert.Equal(t, "NULL", out)
}
