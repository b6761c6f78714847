package queryexec

import "github.com/CandiedCode/ml-metadata/pkg/types"

// InsertArtifact inserts one Artifact row and its custom/declared
// properties, returning the new artifact's server-assigned id.
// Duplicate (type_id, name) surfaces as AlreadyExists.
func (e *Executor) InsertArtifact(a *types.Artifact, properties []*types.Property) (int64, error) {
	id, err := e.insertAndGetID("insert_artifact",
		e.binder.BindInt64(a.TypeID),
		e.binder.BindString(a.URI),
		e.binder.BindArtifactState(a.State),
		e.binder.BindStringPtr(a.Name),
		e.binder.BindInt64(a.CreateTimeMs),
		e.binder.BindInt64(a.UpdateTimeMs),
	)
	if err != nil {
		return 0, err
	}
	for _, p := range properties {
		if err := e.InsertArtifactProperty(id, p.Name, p.IsCustomProperty, p.Value); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SelectArtifactByID returns the single Artifact with the given id, or
// NotFound if absent.
func (e *Executor) SelectArtifactByID(id int64) (*types.Artifact, error) {
	rs, err := e.query("select_artifact_by_id", e.binder.BindInt64(id))
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no artifact with that id")
	}
	return hydrateArtifact(rs.Records[0], rs)
}

// SelectArtifactsByID returns the Artifact rows whose id is in ids.
// Empty ids short-circuits without touching the driver.
func (e *Executor) SelectArtifactsByID(ids []int64) ([]*types.Artifact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_artifacts_by_id", idList)
	if err != nil {
		return nil, err
	}
	return hydrateArtifacts(rs)
}

// SelectArtifactsByTypeID returns every Artifact of the given type.
func (e *Executor) SelectArtifactsByTypeID(typeID int64) ([]*types.Artifact, error) {
	rs, err := e.query("select_artifacts_by_type_id", e.binder.BindInt64(typeID))
	if err != nil {
		return nil, err
	}
	return hydrateArtifacts(rs)
}

// SelectArtifactsByURI returns every Artifact recorded against uri.
func (e *Executor) SelectArtifactsByURI(uri string) ([]*types.Artifact, error) {
	rs, err := e.query("select_artifacts_by_uri", e.binder.BindString(uri))
	if err != nil {
		return nil, err
	}
	return hydrateArtifacts(rs)
}

// SelectArtifactByTypeIDAndArtifactName returns the Artifact uniquely
// identified by (typeID, name), or NotFound if absent.
func (e *Executor) SelectArtifactByTypeIDAndArtifactName(typeID int64, name string) (*types.Artifact, error) {
	rs, err := e.query("select_artifact_by_type_id_and_name", e.binder.BindInt64(typeID), e.binder.BindString(name))
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no artifact with that type_id/name")
	}
	return hydrateArtifact(rs.Records[0], rs)
}

// SelectAllArtifactIDs returns every Artifact id, the unfiltered
// primitive the List Operation Planner's candidate-id restriction
// composes against.
func (e *Executor) SelectAllArtifactIDs() ([]int64, error) {
	rs, err := e.query("select_all_artifact_ids")
	if err != nil {
		return nil, err
	}
	return idColumn(rs)
}

// UpdateArtifactDirect overwrites an Artifact's non-property columns in
// place, distinct from the property-row Update operations.
func (e *Executor) UpdateArtifactDirect(a *types.Artifact) error {
	_, err := e.query("update_artifact",
		e.binder.BindInt64(a.TypeID),
		e.binder.BindString(a.URI),
		e.binder.BindArtifactState(a.State),
		e.binder.BindStringPtr(a.Name),
		e.binder.BindInt64(a.UpdateTimeMs),
		e.binder.BindInt64(a.ID),
	)
	return err
}

// DeleteArtifactsById deletes the Artifact rows in ids and their
// property rows only (partial cascade — Events/Attributions
// referencing them are untouched, spec.md §4.2). Empty ids and
// non-existent ids are both no-ops.
func (e *Executor) DeleteArtifactsById(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := e.deletePropertiesByOwnerIDs(artifactPropertyTemplates, ids); err != nil {
		return err
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return err
	}
	_, err = e.query("delete_artifacts_by_id", idList)
	return err
}

func hydrateArtifacts(rs *types.RecordSet) ([]*types.Artifact, error) {
	out := make([]*types.Artifact, 0, len(rs.Records))
	for _, rec := range rs.Records {
		a, err := hydrateArtifact(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func idColumn(rs *types.RecordSet) ([]int64, error) {
	out := make([]int64, 0, len(rs.Records))
	for _, rec := range rs.Records {
		id, err := cellInt64(rec, rs, "id")
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
