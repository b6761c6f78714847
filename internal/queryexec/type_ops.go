package queryexec

import (
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// InsertArtifactType, InsertExecutionType, and InsertContextType each
// insert a Type row of the matching kind and its TypeProperty rows,
// returning the new type's server-assigned id (spec.md §4.2). A
// duplicate (name, version, kind) with a non-nil version surfaces as
// AlreadyExists via the underlying unique-index violation. Two types
// with the same name and kind and a nil version do not collide: the
// unique index treats NULL versions as distinct, and no other check is
// made.

func (e *Executor) InsertArtifactType(t *types.Type, properties map[string]types.PropertyType) (int64, error) {
	return e.insertType(t, types.ArtifactTypeKind, properties)
}

func (e *Executor) InsertContextType(t *types.Type, properties map[string]types.PropertyType) (int64, error) {
	return e.insertType(t, types.ContextTypeKind, properties)
}

// InsertExecutionType additionally stores InputType/OutputType as
// serialised structural schema documents (spec.md §4.2).
func (e *Executor) InsertExecutionType(t *types.Type, properties map[string]types.PropertyType) (int64, error) {
	return e.insertType(t, types.ExecutionTypeKind, properties)
}

func (e *Executor) insertType(t *types.Type, kind types.TypeKind, properties map[string]types.PropertyType) (int64, error) {
	inputLit, err := e.binder.BindArtifactStructType(t.InputType)
	if err != nil {
		return 0, types.NewInternal("queryexec: bind input_type", err)
	}
	outputLit, err := e.binder.BindArtifactStructType(t.OutputType)
	if err != nil {
		return 0, types.NewInternal("queryexec: bind output_type", err)
	}

	id, err := e.insertAndGetID("insert_type",
		e.binder.BindString(t.Name),
		e.binder.BindStringPtr(t.Version),
		e.binder.BindTypeKind(kind),
		e.binder.BindStringPtr(t.Description),
		inputLit,
		outputLit,
	)
	if err != nil {
		return 0, err
	}

	for name, pt := range properties {
		if _, err := e.query("insert_type_property",
			e.binder.BindInt64(id),
			e.binder.BindString(name),
			e.binder.BindPropertyType(pt),
		); err != nil {
			return 0, err
		}
	}

	e.log.Debug().Int64("type_id", id).Str("kind", kind.String()).Msg("inserted type")
	return id, nil
}

// InsertParentType records a (possibly dangling) soft link from typeID
// to parentTypeID; neither side is checked against Type existence
// (spec.md §3, §9; tested by §8 property 2 / S4).
func (e *Executor) InsertParentType(typeID, parentTypeID int64) error {
	_, err := e.query("insert_parent_type", e.binder.BindInt64(typeID), e.binder.BindInt64(parentTypeID))
	return err
}

// DeleteParentType removes one ParentType link. Deleting a link that
// does not exist is a no-op, matching the module's delete-is-idempotent
// discipline (spec.md §7).
func (e *Executor) DeleteParentType(typeID, parentTypeID int64) error {
	_, err := e.query("delete_parent_type", e.binder.BindInt64(typeID), e.binder.BindInt64(parentTypeID))
	return err
}

// SelectTypeByID returns the single Type row with the given id and
// kind, or NotFound if absent or of a different kind.
func (e *Executor) SelectTypeByID(id int64, kind types.TypeKind) (*types.Type, error) {
	rs, err := e.query("select_type_by_id", e.binder.BindInt64(id))
	if err != nil {
		return nil, err
	}
	t, ok, err := firstOfKind(rs, kind)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NewNotFound("queryexec: no type with that id and kind")
	}
	return t, nil
}

// SelectTypesByID returns the Type rows whose id is in ids and whose
// stored kind equals kind; ids of a different kind are silently
// filtered, not errored (spec.md §8 property 1, S1, S2).
func (e *Executor) SelectTypesByID(ids []int64, kind types.TypeKind) ([]*types.Type, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_types_by_id", idList)
	if err != nil {
		return nil, err
	}
	return filterByKind(rs, kind)
}

// SelectTypeByNameAndVersion looks up a Type by its (name, version,
// kind) unique key. A nil version compares with IS NULL, a distinct key
// from any non-NULL version (spec.md §4.2, §9 Open Question (a)).
func (e *Executor) SelectTypeByNameAndVersion(name string, version *string, kind types.TypeKind) (*types.Type, error) {
	var rs *types.RecordSet
	var err error
	if version == nil {
		rs, err = e.query("select_type_by_name", e.binder.BindString(name), e.binder.BindTypeKind(kind))
	} else {
		rs, err = e.query("select_type_by_name_and_version", e.binder.BindString(name), e.binder.BindString(*version), e.binder.BindTypeKind(kind))
	}
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no type with that name/version/kind")
	}
	return hydrateType(rs.Records[0], rs)
}

// SelectAllTypes returns every Type row of the given kind
// (original_source query_config_executor SelectAllArtifactTypes and its
// Execution/Context analogues, folded into one kind-parameterised op
// per SPEC_FULL §3).
func (e *Executor) SelectAllTypes(kind types.TypeKind) ([]*types.Type, error) {
	rs, err := e.query("select_all_types", e.binder.BindTypeKind(kind))
	if err != nil {
		return nil, err
	}
	out := make([]*types.Type, 0, len(rs.Records))
	for _, rec := range rs.Records {
		t, err := hydrateType(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// SelectPropertiesByTypeID returns the TypeProperty rows declared on typeID.
func (e *Executor) SelectPropertiesByTypeID(typeID int64) ([]*types.TypeProperty, error) {
	rs, err := e.query("select_properties_by_type_id", e.binder.BindInt64(typeID))
	if err != nil {
		return nil, err
	}
	out := make([]*types.TypeProperty, 0, len(rs.Records))
	for _, rec := range rs.Records {
		p, err := hydrateTypeProperty(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SelectParentTypesByTypeID returns every stored ParentType link whose
// child is in ids, regardless of whether parent_type_id names an
// existing Type (soft link, spec.md §8 property 2, S4). Empty ids
// short-circuits without touching the driver (spec.md §8 property 5).
func (e *Executor) SelectParentTypesByTypeID(ids []int64) ([]*types.ParentType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_parent_types_by_type_id", idList)
	if err != nil {
		return nil, err
	}
	out := make([]*types.ParentType, 0, len(rs.Records))
	for _, rec := range rs.Records {
		pt, err := hydrateParentType(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

// firstOfKind returns the first row of rs whose type_kind matches kind.
func firstOfKind(rs *types.RecordSet, kind types.TypeKind) (*types.Type, bool, error) {
	for _, rec := range rs.Records {
		t, err := hydrateType(rec, rs)
		if err != nil {
			return nil, false, err
		}
		if t.TypeKind == kind {
			return t, true, nil
		}
	}
	return nil, false, nil
}

// filterByKind hydrates every row of rs whose type_kind matches kind.
func filterByKind(rs *types.RecordSet, kind types.TypeKind) ([]*types.Type, error) {
	out := make([]*types.Type, 0, len(rs.Records))
	for _, rec := range rs.Records {
		t, err := hydrateType(rec, rs)
		if err != nil {
			return nil, err
		}
		if t.TypeKind == kind {
			out = append(out, t)
		}
	}
	return out, nil
}
