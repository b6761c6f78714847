package queryexec

import "github.com/CandiedCode/ml-metadata/pkg/types"

// InsertExecution inserts one Execution row and its properties,
// returning the new execution's server-assigned id.
func (e *Executor) InsertExecution(x *types.Execution, properties []*types.Property) (int64, error) {
	id, err := e.insertAndGetID("insert_execution",
		e.binder.BindInt64(x.TypeID),
		e.binder.BindExecutionState(x.LastKnownState),
		e.binder.BindStringPtr(x.Name),
		e.binder.BindInt64(x.CreateTimeMs),
		e.binder.BindInt64(x.UpdateTimeMs),
	)
	if err != nil {
		return 0, err
	}
	for _, p := range properties {
		if err := e.InsertExecutionProperty(id, p.Name, p.IsCustomProperty, p.Value); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SelectExecutionByID returns the single Execution with the given id, or
// NotFound if absent.
func (e *Executor) SelectExecutionByID(id int64) (*types.Execution, error) {
	rs, err := e.query("select_execution_by_id", e.binder.BindInt64(id))
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no execution with that id")
	}
	return hydrateExecution(rs.Records[0], rs)
}

// SelectExecutionsByID returns the Execution rows whose id is in ids.
// Empty ids short-circuits without touching the driver.
func (e *Executor) SelectExecutionsByID(ids []int64) ([]*types.Execution, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_executions_by_id", idList)
	if err != nil {
		return nil, err
	}
	return hydrateExecutions(rs)
}

// SelectExecutionsByTypeID returns every Execution of the given type.
func (e *Executor) SelectExecutionsByTypeID(typeID int64) ([]*types.Execution, error) {
	rs, err := e.query("select_executions_by_type_id", e.binder.BindInt64(typeID))
	if err != nil {
		return nil, err
	}
	return hydrateExecutions(rs)
}

// SelectExecutionByTypeIDAndExecutionName returns the Execution uniquely
// identified by (typeID, name), or NotFound if absent.
func (e *Executor) SelectExecutionByTypeIDAndExecutionName(typeID int64, name string) (*types.Execution, error) {
	rs, err := e.query("select_execution_by_type_id_and_name", e.binder.BindInt64(typeID), e.binder.BindString(name))
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no execution with that type_id/name")
	}
	return hydrateExecution(rs.Records[0], rs)
}

// SelectAllExecutionIDs returns every Execution id.
func (e *Executor) SelectAllExecutionIDs() ([]int64, error) {
	rs, err := e.query("select_all_execution_ids")
	if err != nil {
		return nil, err
	}
	return idColumn(rs)
}

// UpdateExecutionDirect overwrites an Execution's non-property columns
// in place.
func (e *Executor) UpdateExecutionDirect(x *types.Execution) error {
	_, err := e.query("update_execution",
		e.binder.BindInt64(x.TypeID),
		e.binder.BindExecutionState(x.LastKnownState),
		e.binder.BindStringPtr(x.Name),
		e.binder.BindInt64(x.UpdateTimeMs),
		e.binder.BindInt64(x.ID),
	)
	return err
}

// DeleteExecutionsById deletes the Execution rows in ids and their
// property rows only (partial cascade, spec.md §4.2). Empty and
// non-existent ids are no-ops.
func (e *Executor) DeleteExecutionsById(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := e.deletePropertiesByOwnerIDs(executionPropertyTemplates, ids); err != nil {
		return err
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return err
	}
	_, err = e.query("delete_executions_by_id", idList)
	return err
}

func hydrateExecutions(rs *types.RecordSet) ([]*types.Execution, error) {
	out := make([]*types.Execution, 0, len(rs.Records))
	for _, rec := range rs.Records {
		x, err := hydrateExecution(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}
