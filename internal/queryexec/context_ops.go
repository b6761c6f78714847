package queryexec

import "github.com/CandiedCode/ml-metadata/pkg/types"

// InsertContext inserts one Context row and its properties, returning
// the new context's server-assigned id. A duplicate name within the
// same type_id surfaces as AlreadyExists (spec.md §3 Context.name
// uniqueness).
func (e *Executor) InsertContext(c *types.Context, properties []*types.Property) (int64, error) {
	id, err := e.insertAndGetID("insert_context",
		e.binder.BindInt64(c.TypeID),
		e.binder.BindString(c.Name),
		e.binder.BindInt64(c.CreateTimeMs),
		e.binder.BindInt64(c.UpdateTimeMs),
	)
	if err != nil {
		return 0, err
	}
	for _, p := range properties {
		if err := e.InsertContextProperty(id, p.Name, p.IsCustomProperty, p.Value); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SelectContextByID returns the single Context with the given id, or
// NotFound if absent.
func (e *Executor) SelectContextByID(id int64) (*types.Context, error) {
	rs, err := e.query("select_context_by_id", e.binder.BindInt64(id))
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no context with that id")
	}
	return hydrateContext(rs.Records[0], rs)
}

// SelectContextsByID returns the Context rows whose id is in ids. Empty
// ids short-circuits without touching the driver.
func (e *Executor) SelectContextsByID(ids []int64) ([]*types.Context, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_contexts_by_id", idList)
	if err != nil {
		return nil, err
	}
	return hydrateContexts(rs)
}

// SelectContextsByTypeID returns every Context of the given type.
func (e *Executor) SelectContextsByTypeID(typeID int64) ([]*types.Context, error) {
	rs, err := e.query("select_contexts_by_type_id", e.binder.BindInt64(typeID))
	if err != nil {
		return nil, err
	}
	return hydrateContexts(rs)
}

// SelectContextByTypeIDAndContextName returns the Context uniquely
// identified by (typeID, name), or NotFound if absent.
func (e *Executor) SelectContextByTypeIDAndContextName(typeID int64, name string) (*types.Context, error) {
	rs, err := e.query("select_context_by_type_id_and_name", e.binder.BindInt64(typeID), e.binder.BindString(name))
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, types.NewNotFound("queryexec: no context with that type_id/name")
	}
	return hydrateContext(rs.Records[0], rs)
}

// SelectAllContextIDs returns every Context id.
func (e *Executor) SelectAllContextIDs() ([]int64, error) {
	rs, err := e.query("select_all_context_ids")
	if err != nil {
		return nil, err
	}
	return idColumn(rs)
}

// UpdateContextDirect overwrites a Context's non-property columns in place.
func (e *Executor) UpdateContextDirect(c *types.Context) error {
	_, err := e.query("update_context",
		e.binder.BindInt64(c.TypeID),
		e.binder.BindString(c.Name),
		e.binder.BindInt64(c.UpdateTimeMs),
		e.binder.BindInt64(c.ID),
	)
	return err
}

// DeleteContextsById deletes the Context rows in ids and their property
// rows only. It deliberately does NOT delete Attributions or
// Associations referencing those contexts — that cascade is a separate,
// explicit operation the caller composes (spec.md §4.2, §8 property 3,
// S3). Empty ids and non-existent ids are both no-ops.
func (e *Executor) DeleteContextsById(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := e.deletePropertiesByOwnerIDs(contextPropertyTemplates, ids); err != nil {
		return err
	}
	idList, err := e.binder.BindInt64List(ids)
	if err != nil {
		return err
	}
	_, err = e.query("delete_contexts_by_id", idList)
	return err
}

// InsertParentContext records a soft, directed link from parentID to
// childID; neither side is checked against Context existence, matching
// ParentType's non-enforced semantics (spec.md §1, §9).
func (e *Executor) InsertParentContext(parentID, childID int64) error {
	_, err := e.query("insert_parent_context", e.binder.BindInt64(parentID), e.binder.BindInt64(childID))
	return err
}

// SelectParentContextsByContextID returns the ParentContext links whose
// child is contextID (the "who are my parents" direction).
func (e *Executor) SelectParentContextsByContextID(contextID int64) ([]*types.ParentContext, error) {
	rs, err := e.query("select_parent_contexts_by_context_id", e.binder.BindInt64(contextID))
	if err != nil {
		return nil, err
	}
	return hydrateParentContexts(rs)
}

// SelectChildContextsByContextID returns the ParentContext links whose
// parent is contextID (the "who are my children" direction).
func (e *Executor) SelectChildContextsByContextID(contextID int64) ([]*types.ParentContext, error) {
	rs, err := e.query("select_child_contexts_by_context_id", e.binder.BindInt64(contextID))
	if err != nil {
		return nil, err
	}
	return hydrateParentContexts(rs)
}

// DeleteParentContextsByParentID removes every ParentContext link whose
// parent is parentID. A caller-composed half of the cascade the
// enclosing service assembles (spec.md §4.2).
func (e *Executor) DeleteParentContextsByParentID(parentID int64) error {
	_, err := e.query("delete_parent_contexts_by_parent_id", e.binder.BindInt64(parentID))
	return err
}

// DeleteParentContextsByChildID removes every ParentContext link whose
// child is childID.
func (e *Executor) DeleteParentContextsByChildID(childID int64) error {
	_, err := e.query("delete_parent_contexts_by_child_id", e.binder.BindInt64(childID))
	return err
}

func hydrateContexts(rs *types.RecordSet) ([]*types.Context, error) {
	out := make([]*types.Context, 0, len(rs.Records))
	for _, rec := range rs.Records {
		c, err := hydrateContext(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func hydrateParentContexts(rs *types.RecordSet) ([]*types.ParentContext, error) {
	out := make([]*types.ParentContext, 0, len(rs.Records))
	for _, rec := range rs.Records {
		pc, err := hydrateParentContext(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, nil
}
