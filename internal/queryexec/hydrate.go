package queryexec

import (
	"strconv"

	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// cellInt64 parses a required int64 cell by column name.
func cellInt64(rec types.Record, rs *types.RecordSet, column string) (int64, error) {
	idx := rs.GetColumnIndex(column)
	if idx < 0 {
		return 0, types.NewInternal("queryexec: missing column "+column, nil)
	}
	v, err := strconv.ParseInt(rec.Values[idx], 10, 64)
	if err != nil {
		return 0, types.NewInternal("queryexec: parse int64 column "+column, err)
	}
	return v, nil
}

// cellOptionalInt64 parses an optional int64 cell: nil when the cell is
// the NULL sentinel (spec.md §3, §4.5).
func cellOptionalInt64(rec types.Record, rs *types.RecordSet, column string) (*int64, error) {
	idx := rs.GetColumnIndex(column)
	if idx < 0 {
		return nil, types.NewInternal("queryexec: missing column "+column, nil)
	}
	raw := rec.Values[idx]
	if raw == types.NullSentinel {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, types.NewInternal("queryexec: parse int64 column "+column, err)
	}
	return &v, nil
}

// cellOptionalString parses an optional string cell: nil when NULL.
func cellOptionalString(rec types.Record, rs *types.RecordSet, column string) (*string, error) {
	idx := rs.GetColumnIndex(column)
	if idx < 0 {
		return nil, types.NewInternal("queryexec: missing column "+column, nil)
	}
	raw := rec.Values[idx]
	if raw == types.NullSentinel {
		return nil, nil
	}
	v := raw
	return &v, nil
}

// cellString parses a required (possibly empty but never NULL) string cell.
func cellString(rec types.Record, rs *types.RecordSet, column string) (string, error) {
	idx := rs.GetColumnIndex(column)
	if idx < 0 {
		return "", types.NewInternal("queryexec: missing column "+column, nil)
	}
	return rec.Values[idx], nil
}

// cellBool parses a "0"/"1" (or dialect-true/false) discriminator cell.
func cellBool(rec types.Record, rs *types.RecordSet, column string) (bool, error) {
	s, err := cellString(rec, rs, column)
	if err != nil {
		return false, err
	}
	return s == "1" || s == "TRUE" || s == "true", nil
}

// hydrateType converts one Type row into a *types.Type. input_type/
// output_type are not read back: the returned Type's InputType and
// OutputType are always nil, and no function in this package decodes
// those columns.
func hydrateType(rec types.Record, rs *types.RecordSet) (*types.Type, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	name, err := cellString(rec, rs, "name")
	if err != nil {
		return nil, err
	}
	version, err := cellOptionalString(rec, rs, "version")
	if err != nil {
		return nil, err
	}
	kindRaw, err := cellInt64(rec, rs, "type_kind")
	if err != nil {
		return nil, err
	}
	desc, err := cellOptionalString(rec, rs, "description")
	if err != nil {
		return nil, err
	}
	return &types.Type{
		ID:          id,
		Name:        name,
		Version:     version,
		TypeKind:    types.TypeKind(kindRaw),
		Description: desc,
	}, nil
}

func hydrateTypeProperty(rec types.Record, rs *types.RecordSet) (*types.TypeProperty, error) {
	typeID, err := cellInt64(rec, rs, "type_id")
	if err != nil {
		return nil, err
	}
	name, err := cellString(rec, rs, "name")
	if err != nil {
		return nil, err
	}
	dt, err := cellInt64(rec, rs, "data_type")
	if err != nil {
		return nil, err
	}
	return &types.TypeProperty{TypeID: typeID, Name: name, PropertyType: types.PropertyType(dt)}, nil
}

func hydrateParentType(rec types.Record, rs *types.RecordSet) (*types.ParentType, error) {
	typeID, err := cellInt64(rec, rs, "type_id")
	if err != nil {
		return nil, err
	}
	parentID, err := cellInt64(rec, rs, "parent_type_id")
	if err != nil {
		return nil, err
	}
	return &types.ParentType{TypeID: typeID, ParentTypeID: parentID}, nil
}

func hydrateArtifact(rec types.Record, rs *types.RecordSet) (*types.Artifact, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	typeID, err := cellInt64(rec, rs, "type_id")
	if err != nil {
		return nil, err
	}
	uri, err := cellString(rec, rs, "uri")
	if err != nil {
		return nil, err
	}
	stateRaw, err := cellOptionalInt64(rec, rs, "state")
	if err != nil {
		return nil, err
	}
	var state *types.ArtifactState
	if stateRaw != nil {
		s := types.ArtifactState(*stateRaw)
		state = &s
	}
	name, err := cellOptionalString(rec, rs, "name")
	if err != nil {
		return nil, err
	}
	createMs, err := cellInt64(rec, rs, "create_time_since_epoch")
	if err != nil {
		return nil, err
	}
	updateMs, err := cellInt64(rec, rs, "last_update_time_since_epoch")
	if err != nil {
		return nil, err
	}
	return &types.Artifact{
		ID: id, TypeID: typeID, URI: uri, State: state, Name: name,
		CreateTimeMs: createMs, UpdateTimeMs: updateMs,
	}, nil
}

func hydrateExecution(rec types.Record, rs *types.RecordSet) (*types.Execution, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	typeID, err := cellInt64(rec, rs, "type_id")
	if err != nil {
		return nil, err
	}
	stateRaw, err := cellOptionalInt64(rec, rs, "last_known_state")
	if err != nil {
		return nil, err
	}
	var state *types.ExecutionState
	if stateRaw != nil {
		s := types.ExecutionState(*stateRaw)
		state = &s
	}
	name, err := cellOptionalString(rec, rs, "name")
	if err != nil {
		return nil, err
	}
	createMs, err := cellInt64(rec, rs, "create_time_since_epoch")
	if err != nil {
		return nil, err
	}
	updateMs, err := cellInt64(rec, rs, "last_update_time_since_epoch")
	if err != nil {
		return nil, err
	}
	return &types.Execution{
		ID: id, TypeID: typeID, LastKnownState: state, Name: name,
		CreateTimeMs: createMs, UpdateTimeMs: updateMs,
	}, nil
}

func hydrateContext(rec types.Record, rs *types.RecordSet) (*types.Context, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	typeID, err := cellInt64(rec, rs, "type_id")
	if err != nil {
		return nil, err
	}
	name, err := cellString(rec, rs, "name")
	if err != nil {
		return nil, err
	}
	createMs, err := cellInt64(rec, rs, "create_time_since_epoch")
	if err != nil {
		return nil, err
	}
	updateMs, err := cellInt64(rec, rs, "last_update_time_since_epoch")
	if err != nil {
		return nil, err
	}
	return &types.Context{ID: id, TypeID: typeID, Name: name, CreateTimeMs: createMs, UpdateTimeMs: updateMs}, nil
}

// hydrateProperty converts one Artifact/Execution/ContextProperty row
// into a *types.Property. ownerColumn is the entity-specific owning id
// column name ("artifact_id", "execution_id", or "context_id").
func hydrateProperty(rec types.Record, rs *types.RecordSet, ownerColumn string) (*types.Property, error) {
	ownerID, err := cellInt64(rec, rs, ownerColumn)
	if err != nil {
		return nil, err
	}
	name, err := cellString(rec, rs, "name")
	if err != nil {
		return nil, err
	}
	isCustom, err := cellBool(rec, rs, "is_custom_property")
	if err != nil {
		return nil, err
	}
	intRaw, err := cellOptionalInt64(rec, rs, "int_value")
	if err != nil {
		return nil, err
	}
	doubleIdx := rs.GetColumnIndex("double_value")
	if doubleIdx < 0 {
		return nil, types.NewInternal("queryexec: missing column double_value", nil)
	}
	strRaw, err := cellOptionalString(rec, rs, "string_value")
	if err != nil {
		return nil, err
	}

	var value types.Value
	switch {
	case intRaw != nil:
		value = types.IntValueOf(*intRaw)
	case rec.Values[doubleIdx] != types.NullSentinel:
		f, ferr := parseFloat(rec.Values[doubleIdx])
		if ferr != nil {
			return nil, types.NewInternal("queryexec: parse double_value", ferr)
		}
		value = types.DoubleValueOf(f)
	case strRaw != nil:
		value = types.StringValueOf(*strRaw)
	default:
		value = types.Value{}
	}

	return &types.Property{OwnerID: ownerID, Name: name, IsCustomProperty: isCustom, Value: value}, nil
}

func hydrateEvent(rec types.Record, rs *types.RecordSet) (*types.Event, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	artifactID, err := cellInt64(rec, rs, "artifact_id")
	if err != nil {
		return nil, err
	}
	executionID, err := cellInt64(rec, rs, "execution_id")
	if err != nil {
		return nil, err
	}
	eventType, err := cellInt64(rec, rs, "type")
	if err != nil {
		return nil, err
	}
	msRaw, err := cellOptionalInt64(rec, rs, "milliseconds_since_epoch")
	if err != nil {
		return nil, err
	}
	var ms int64
	if msRaw != nil {
		ms = *msRaw
	}
	return &types.Event{
		ID: id, ArtifactID: artifactID, ExecutionID: executionID,
		Type: types.EventType(eventType), EventTimeMs: ms,
	}, nil
}

func hydrateEventPathStep(rec types.Record, rs *types.RecordSet) (int64, types.EventPathStep, error) {
	eventID, err := cellInt64(rec, rs, "event_id")
	if err != nil {
		return 0, types.EventPathStep{}, err
	}
	isIndex, err := cellBool(rec, rs, "is_index_step")
	if err != nil {
		return 0, types.EventPathStep{}, err
	}
	if isIndex {
		idx, err := cellInt64(rec, rs, "step_index")
		if err != nil {
			return 0, types.EventPathStep{}, err
		}
		return eventID, types.EventPathStep{Kind: types.StepIndex, Index: idx}, nil
	}
	key, err := cellString(rec, rs, "step_key")
	if err != nil {
		return 0, types.EventPathStep{}, err
	}
	return eventID, types.EventPathStep{Kind: types.StepKey, Key: key}, nil
}

func hydrateAttribution(rec types.Record, rs *types.RecordSet) (*types.Attribution, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	contextID, err := cellInt64(rec, rs, "context_id")
	if err != nil {
		return nil, err
	}
	artifactID, err := cellInt64(rec, rs, "artifact_id")
	if err != nil {
		return nil, err
	}
	return &types.Attribution{ID: id, ContextID: contextID, ArtifactID: artifactID}, nil
}

func hydrateAssociation(rec types.Record, rs *types.RecordSet) (*types.Association, error) {
	id, err := cellInt64(rec, rs, "id")
	if err != nil {
		return nil, err
	}
	contextID, err := cellInt64(rec, rs, "context_id")
	if err != nil {
		return nil, err
	}
	executionID, err := cellInt64(rec, rs, "execution_id")
	if err != nil {
		return nil, err
	}
	return &types.Association{ID: id, ContextID: contextID, ExecutionID: executionID}, nil
}

func hydrateParentContext(rec types.Record, rs *types.RecordSet) (*types.ParentContext, error) {
	parentID, err := cellInt64(rec, rs, "parent_context_id")
	if err != nil {
		return nil, err
	}
	childID, err := cellInt64(rec, rs, "child_context_id")
	if err != nil {
		return nil, err
	}
	return &types.ParentContext{ParentID: parentID, ChildID: childID}, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
