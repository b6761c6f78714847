package queryexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CandiedCode/ml-metadata/internal/sqlitesource"
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// newTestExecutor opens an in-memory SQLite-backed MetadataSource,
// initialises its schema, and begins the transaction every operation
// requires (spec.md §5). t.Cleanup commits and closes, so a test never
// has to remember to tear down.
func newTestExecutor(t *testing.T) (*Executor, *sqlitesource.Source) {
	t.Helper()
	src, err := sqlitesource.Open(":memory:")
	require.NoError(t, err)

	e, err := New(src, "sqlite")
	require.NoError(t, err)
	require.NoError(t, e.InitMetadataSource(true))

	require.NoError(t, src.Begin())
	t.Cleanup(func() {
		_ = src.Commit()
		_ = src.Close()
	})
	return e, src
}

func mustArtifactType(t *testing.T, e *Executor, name string) int64 {
	t.Helper()
	id, err := e.InsertArtifactType(&types.Type{Name: name}, nil)
	require.NoError(t, err)
	return id
}

func mustExecutionType(t *testing.T, e *Executor, name string) int64 {
	t.Helper()
	id, err := e.InsertExecutionType(&types.Type{Name: name}, nil)
	require.NoError(t, err)
	return id
}

func mustContextType(t *testing.T, e *Executor, name string) int64 {
	t.Helper()
	id, err := e.InsertContextType(&types.Type{Name: name}, nil)
	require.NoError(t, err)
	return id
}

// TestS1SelectTypesByIDAcrossKinds is spec.md §8 scenario S1.
func TestS1SelectTypesByIDAcrossKinds(t *testing.T) {
	e, _ := newTestExecutor(t)

	a1 := mustArtifactType(t, e, "artifact_type_1")
	a2 := mustArtifactType(t, e, "artifact_type_2")
	x1 := mustExecutionType(t, e, "execution_type_1")
	x2 := mustExecutionType(t, e, "execution_type_2")
	c1 := mustContextType(t, e, "context_type_1")

	artifacts, err := e.SelectTypesByID([]int64{a1, a2}, types.ArtifactTypeKind)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	names := []string{artifacts[0].Name, artifacts[1].Name}
	assert.ElementsMatch(t, []string{"artifact_type_1", "artifact_type_2"}, names)
	assert.Nil(t, artifacts[0].Version)
	assert.Nil(t, artifacts[0].Description)

	executions, err := e.SelectTypesByID([]int64{x1, x2}, types.ExecutionTypeKind)
	require.NoError(t, err)
	assert.Len(t, executions, 2)

	contexts, err := e.SelectTypesByID([]int64{c1}, types.ContextTypeKind)
	require.NoError(t, err)
	assert.Len(t, contexts, 1)
}

// TestS2MixedKindFilter is spec.md §8 scenario S2.
func TestS2MixedKindFilter(t *testing.T) {
	e, _ := newTestExecutor(t)

	a1 := mustArtifactType(t, e, "artifact_type_1")
	_ = mustArtifactType(t, e, "artifact_type_2")
	c1 := mustContextType(t, e, "context_type_3")

	rows, err := e.SelectTypesByID([]int64{a1, c1}, types.ArtifactTypeKind)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "artifact_type_1", rows[0].Name)
}

// TestS3DeleteContextsByIdPartialCascade is spec.md §8 scenario S3.
func TestS3DeleteContextsByIdPartialCascade(t *testing.T) {
	e, _ := newTestExecutor(t)

	ctxType := mustContextType(t, e, "ctx_type")
	artifactType := mustArtifactType(t, e, "art_type")
	executionType := mustExecutionType(t, e, "exec_type")

	c1, err := e.InsertContext(&types.Context{TypeID: ctxType, Name: "c1"}, nil)
	require.NoError(t, err)
	c2, err := e.InsertContext(&types.Context{TypeID: ctxType, Name: "c2"}, nil)
	require.NoError(t, err)

	require.NoError(t, e.InsertContextProperty(c1, "property_1", false, types.IntValueOf(3)))
	require.NoError(t, e.InsertContextProperty(c2, "property_1", false, types.IntValueOf(3)))

	artifactID, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://a"}, nil)
	require.NoError(t, err)
	executionID, err := e.InsertExecution(&types.Execution{TypeID: executionType}, nil)
	require.NoError(t, err)

	_, err = e.InsertAttribution(c1, artifactID)
	require.NoError(t, err)
	_, err = e.InsertAssociation(c1, executionID)
	require.NoError(t, err)

	// Empty delete is a no-op.
	require.NoError(t, e.DeleteContextsById(nil))
	rows, err := e.SelectContextsByID([]int64{c1, c2})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, e.DeleteContextsById([]int64{c1}))

	rows, err = e.SelectContextsByID([]int64{c1, c2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, c2, rows[0].ID)

	props, err := e.SelectContextPropertyByContextID([]int64{c1})
	require.NoError(t, err)
	assert.Empty(t, props)

	attrs, err := e.SelectAttributionByContextID(c1)
	require.NoError(t, err)
	assert.Len(t, attrs, 1)

	assocs, err := e.SelectAssociationByContextIDs([]int64{c1})
	require.NoError(t, err)
	assert.Len(t, assocs, 1)

	// Deleting a non-existent id is a no-op.
	require.NoError(t, e.DeleteContextsById([]int64{c2 + 1}))
	rows, err = e.SelectContextsByID([]int64{c2})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// TestS4ParentTypesMixingExistingAndDangling is spec.md §8 scenario S4.
func TestS4ParentTypesMixingExistingAndDangling(t *testing.T) {
	e, _ := newTestExecutor(t)

	a := mustArtifactType(t, e, "A")
	pa := mustArtifactType(t, e, "PA")
	x := mustExecutionType(t, e, "E")
	pe := mustExecutionType(t, e, "PE")
	ctxType := mustContextType(t, e, "CTX")

	nx := pe + x // id that names no Type

	require.NoError(t, e.InsertParentType(a, pa))
	require.NoError(t, e.InsertParentType(x, pe))
	require.NoError(t, e.InsertParentType(x, nx))

	rows, err := e.SelectParentTypesByTypeID([]int64{x})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	var pairs [][2]int64
	for _, r := range rows {
		pairs = append(pairs, [2]int64{r.TypeID, r.ParentTypeID})
	}
	assert.Contains(t, pairs, [2]int64{x, pe})
	assert.Contains(t, pairs, [2]int64{x, nx})

	rows, err = e.SelectParentTypesByTypeID([]int64{ctxType})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Empty-input short-circuit (spec.md §8 property 5).
	rows, err = e.SelectParentTypesByTypeID(nil)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

// TestS5SchemaInitRoundTrip is spec.md §8 scenario S5.
func TestS5SchemaInitRoundTrip(t *testing.T) {
	src, err := sqlitesource.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	e, err := New(src, "sqlite")
	require.NoError(t, err)

	require.NoError(t, e.InitMetadataSource(true))

	version, err := e.GetSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, e.config.SchemaVersion, version)

	// Re-running Init on the same database is a no-op that succeeds.
	require.NoError(t, e.InitMetadataSource(true))
	version2, err := e.GetSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, version, version2)
}

// TestNullSentinelRoundTrip is spec.md §8 property 6.
func TestNullSentinelRoundTrip(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")

	id, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x", Name: nil}, nil)
	require.NoError(t, err)

	a, err := e.SelectArtifactByID(id)
	require.NoError(t, err)
	assert.Nil(t, a.Name)
}

// TestIdempotentDeleteArtifacts covers the Artifact side of spec.md §8
// property 4 (DeleteContextsById's sibling discipline).
func TestIdempotentDeleteArtifacts(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")
	id, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x"}, nil)
	require.NoError(t, err)

	require.NoError(t, e.DeleteArtifactsById([]int64{id}))
	require.NoError(t, e.DeleteArtifactsById([]int64{id})) // already gone: still success
	require.NoError(t, e.DeleteArtifactsById(nil))

	_, err = e.SelectArtifactByID(id)
	assert.True(t, types.IsKind(err, types.NotFound))
}

// TestColumnLookupIndependence is spec.md §8 property 7: callers must
// locate columns by name, and the RecordSet's column order is not
// assumed anywhere above this test.
func TestColumnLookupIndependence(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")
	id, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x"}, nil)
	require.NoError(t, err)

	rs, err := e.query("select_artifact_by_id", e.binder.BindInt64(id))
	require.NoError(t, err)
	idx := rs.GetIdColumnIndex()
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "id", rs.ColumnNames[idx])
}

func TestInsertArtifactTypeDuplicateNameAlreadyExists(t *testing.T) {
	e, _ := newTestExecutor(t)
	version := "v1"
	_, err := e.InsertArtifactType(&types.Type{Name: "dup", Version: &version}, nil)
	require.NoError(t, err)
	// A NULL version never collides with another NULL version under SQL
	// UNIQUE semantics, so the duplicate must share a non-NULL version to
	// actually exercise the (name, version, type_kind) constraint.
	_, err = e.InsertArtifactType(&types.Type{Name: "dup", Version: &version}, nil)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.AlreadyExists))
}

func TestEventPathRoundTrip(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")
	executionType := mustExecutionType(t, e, "exec_type")

	artifactID, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x"}, nil)
	require.NoError(t, err)
	executionID, err := e.InsertExecution(&types.Execution{TypeID: executionType}, nil)
	require.NoError(t, err)

	path := []types.EventPathStep{
		{Kind: types.StepKey, Key: "inputs"},
		{Kind: types.StepIndex, Index: 0},
	}
	eventID, err := e.InsertEvent(&types.Event{ArtifactID: artifactID, ExecutionID: executionID, Type: 1, EventTimeMs: 100}, path)
	require.NoError(t, err)

	byArtifact, err := e.SelectEventByArtifactIDs([]int64{artifactID})
	require.NoError(t, err)
	require.Len(t, byArtifact, 1)
	assert.Equal(t, eventID, byArtifact[0].ID)

	paths, err := e.SelectEventPathsByEventIDs([]int64{eventID})
	require.NoError(t, err)
	require.Len(t, paths[eventID], 2)
	assert.Equal(t, types.StepKey, paths[eventID][0].Kind)
	assert.Equal(t, "inputs", paths[eventID][0].Key)
	assert.Equal(t, types.StepIndex, paths[eventID][1].Kind)
	assert.Equal(t, int64(0), paths[eventID][1].Index)
}

func TestListArtifactIDsPagination(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x", CreateTimeMs: int64(i)}, nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	page1, err := e.ListArtifactIDs(nil, types.ListOperationOptions{
		MaxResultSize: 3,
		OrderByField:  types.OrderByID,
		IsAsc:         true,
	})
	require.NoError(t, err)
	assert.Len(t, page1.IDs, 3)
	assert.NotEmpty(t, page1.NextPageToken)

	page2, err := e.ListArtifactIDs(nil, types.ListOperationOptions{
		MaxResultSize: 3,
		OrderByField:  types.OrderByID,
		IsAsc:         true,
		NextPageToken: page1.NextPageToken,
	})
	require.NoError(t, err)
	assert.Len(t, page2.IDs, 2)
	assert.Empty(t, page2.NextPageToken)

	all := append(append([]int64{}, page1.IDs...), page2.IDs...)
	assert.ElementsMatch(t, ids, all)
}

func TestListArtifactIDsEmptyCandidatesShortCircuit(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")
	_, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x"}, nil)
	require.NoError(t, err)

	result, err := e.ListArtifactIDs([]int64{}, types.ListOperationOptions{MaxResultSize: 10, OrderByField: types.OrderByID})
	require.NoError(t, err)
	assert.Empty(t, result.IDs)
}

func TestArtifactPropertyUpdateAndDelete(t *testing.T) {
	e, _ := newTestExecutor(t)
	artifactType := mustArtifactType(t, e, "art_type")
	id, err := e.InsertArtifact(&types.Artifact{TypeID: artifactType, URI: "gs://x"}, nil)
	require.NoError(t, err)

	require.NoError(t, e.InsertArtifactProperty(id, "accuracy", false, types.DoubleValueOf(0.5)))
	require.NoError(t, e.UpdateArtifactProperty(id, "accuracy", false, types.DoubleValueOf(0.9)))

	props, err := e.SelectArtifactPropertyByArtifactID([]int64{id})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, types.DoublePropertyType, props[0].Value.DataType)
	assert.InDelta(t, 0.9, props[0].Value.DoubleValue, 1e-9)

	require.NoError(t, e.DeleteArtifactProperty(id, "accuracy"))
	props, err = e.SelectArtifactPropertyByArtifactID([]int64{id})
	require.NoError(t, err)
	assert.Empty(t, props)
}
