package listops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CandiedCode/ml-metadata/internal/binder"
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

type fakeSource struct{}

func (fakeSource) ExecuteQuery(string) (*types.RecordSet, error) { return nil, nil }
func (fakeSource) Begin() error                                  { return nil }
func (fakeSource) Commit() error                                 { return nil }
func (fakeSource) Rollback() error                                { return nil }
func (fakeSource) LastInsertID() (int64, error)                  { return 0, nil }
func (fakeSource) EscapeString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func newTestPlanner() *Planner {
	return New(binder.New(fakeSource{}))
}

func TestBuildQueryUnrestricted(t *testing.T) {
	p := newTestPlanner()
	opts := types.ListOperationOptions{OrderByField: types.OrderByCreateTime, IsAsc: true, MaxResultSize: 10}
	sql, err := p.BuildQuery("Artifact", nil, opts)
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM Artifact")
	assert.Contains(t, sql, "ORDER BY create_time_since_epoch ASC, id ASC")
	assert.Contains(t, sql, "LIMIT 11;")
	assert.NotContains(t, sql, "IN (")
}

func TestBuildQueryWithCandidates(t *testing.T) {
	p := newTestPlanner()
	opts := types.ListOperationOptions{OrderByField: types.OrderByID, IsAsc: false, MaxResultSize: 5}
	sql, err := p.BuildQuery("Execution", []int64{1, 2, 3}, opts)
	require.NoError(t, err)
	assert.Contains(t, sql, "AND id IN (1, 2, 3)")
	assert.Contains(t, sql, "ORDER BY id DESC, id DESC")
}

func TestBuildQueryRejectsBadMaxResultSize(t *testing.T) {
	p := newTestPlanner()
	_, err := p.BuildQuery("Artifact", nil, types.ListOperationOptions{MaxResultSize: 0})
	assert.True(t, types.IsKind(err, types.InvalidArgument))
}

func TestNoCandidates(t *testing.T) {
	assert.True(t, NoCandidates([]int64{}))
	assert.False(t, NoCandidates(nil))
	assert.False(t, NoCandidates([]int64{1}))
}

func TestEncodeDecodeTokenRoundTrip(t *testing.T) {
	tok := types.PageToken{OrderByField: types.OrderByUpdateTime, IsAsc: true, LastFieldValue: "1000", LastID: 42}
	encoded, err := EncodeToken(tok)
	require.NoError(t, err)
	decoded, err := DecodeToken(encoded)
	require.NoError(t, err)
	assert.Equal(t, tok, decoded)
}

func TestExtractPageWithMore(t *testing.T) {
	p := newTestPlanner()
	opts := types.ListOperationOptions{OrderByField: types.OrderByID, IsAsc: true, MaxResultSize: 2}
	rs := &types.RecordSet{
		ColumnNames: []string{"id", "id"},
		Records: []types.Record{
			{Values: []string{"1", "1"}},
			{Values: []string{"2", "2"}},
			{Values: []string{"3", "3"}},
		},
	}
	result, err := p.ExtractPage(rs, opts)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, result.IDs)
	assert.NotEmpty(t, result.NextPageToken)
}

func TestExtractPageNoMore(t *testing.T) {
	p := newTestPlanner()
	opts := types.ListOperationOptions{OrderByField: types.OrderByID, IsAsc: true, MaxResultSize: 5}
	rs := &types.RecordSet{
		ColumnNames: []string{"id", "id"},
		Records: []types.Record{
			{Values: []string{"1", "1"}},
		},
	}
	result, err := p.ExtractPage(rs, opts)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.IDs)
	assert.Empty(t, result.NextPageToken)
}
