package queryexec

import "github.com/CandiedCode/ml-metadata/pkg/types"

// InsertAttribution links contextID to artifactID, returning the new
// link's server-assigned id. The (context_id, artifact_id) pair is
// unique; a duplicate surfaces as AlreadyExists.
func (e *Executor) InsertAttribution(contextID, artifactID int64) (int64, error) {
	return e.insertAndGetID("insert_attribution", e.binder.BindInt64(contextID), e.binder.BindInt64(artifactID))
}

// SelectAttributionByContextID returns every Attribution for contextID.
func (e *Executor) SelectAttributionByContextID(contextID int64) ([]*types.Attribution, error) {
	rs, err := e.query("select_attribution_by_context_id", e.binder.BindInt64(contextID))
	if err != nil {
		return nil, err
	}
	return hydrateAttributions(rs)
}

// SelectAttributionByArtifactID returns every Attribution for artifactID
// (the artifact-keyed mirror of the context-keyed select spec.md names).
func (e *Executor) SelectAttributionByArtifactID(artifactID int64) ([]*types.Attribution, error) {
	rs, err := e.query("select_attribution_by_artifact_id", e.binder.BindInt64(artifactID))
	if err != nil {
		return nil, err
	}
	return hydrateAttributions(rs)
}

// DeleteAttributionsByContextID removes every Attribution whose
// context_id is contextID. A caller-composed half of a context
// deletion's intended cascade (spec.md §4.2, §8 S3).
func (e *Executor) DeleteAttributionsByContextID(contextID int64) error {
	_, err := e.query("delete_attributions_by_context_id", e.binder.BindInt64(contextID))
	return err
}

// DeleteAttributionsByArtifactID removes every Attribution whose
// artifact_id is artifactID.
func (e *Executor) DeleteAttributionsByArtifactID(artifactID int64) error {
	_, err := e.query("delete_attributions_by_artifact_id", e.binder.BindInt64(artifactID))
	return err
}

// InsertAssociation links contextID to executionID, returning the new
// link's server-assigned id. The (context_id, execution_id) pair is
// unique; a duplicate surfaces as AlreadyExists.
func (e *Executor) InsertAssociation(contextID, executionID int64) (int64, error) {
	return e.insertAndGetID("insert_association", e.binder.BindInt64(contextID), e.binder.BindInt64(executionID))
}

// SelectAssociationByContextIDs returns every Association for any
// context in contextIDs.
func (e *Executor) SelectAssociationByContextIDs(contextIDs []int64) ([]*types.Association, error) {
	var out []*types.Association
	for _, id := range contextIDs {
		rs, err := e.query("select_association_by_context_id", e.binder.BindInt64(id))
		if err != nil {
			return nil, err
		}
		rows, err := hydrateAssociations(rs)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// SelectAssociationByExecutionID returns every Association for
// executionID (the execution-keyed mirror of the context-keyed select
// spec.md names).
func (e *Executor) SelectAssociationByExecutionID(executionID int64) ([]*types.Association, error) {
	rs, err := e.query("select_association_by_execution_id", e.binder.BindInt64(executionID))
	if err != nil {
		return nil, err
	}
	return hydrateAssociations(rs)
}

// DeleteAssociationsByContextID removes every Association whose
// context_id is contextID.
func (e *Executor) DeleteAssociationsByContextID(contextID int64) error {
	_, err := e.query("delete_associations_by_context_id", e.binder.BindInt64(contextID))
	return err
}

// DeleteAssociationsByExecutionID removes every Association whose
// execution_id is executionID.
func (e *Executor) DeleteAssociationsByExecutionID(executionID int64) error {
	_, err := e.query("delete_associations_by_execution_id", e.binder.BindInt64(executionID))
	return err
}

func hydrateAttributions(rs *types.RecordSet) ([]*types.Attribution, error) {
	out := make([]*types.Attribution, 0, len(rs.Records))
	for _, rec := range rs.Records {
		a, err := hydrateAttribution(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func hydrateAssociations(rs *types.RecordSet) ([]*types.Association, error) {
	out := make([]*types.Association, 0, len(rs.Records))
	for _, rec := range rs.Records {
		a, err := hydrateAssociation(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
