package queryexec

import "github.com/CandiedCode/ml-metadata/pkg/types"

// InsertEvent inserts one Event row and its ordered path steps (via
// InsertEventPath), returning the new event's server-assigned id
// (spec.md §4.2: "InsertEvent + InsertEventPath").
func (e *Executor) InsertEvent(ev *types.Event, path []types.EventPathStep) (int64, error) {
	id, err := e.insertAndGetID("insert_event",
		e.binder.BindInt64(ev.ArtifactID),
		e.binder.BindInt64(ev.ExecutionID),
		e.binder.BindEventType(ev.Type),
		e.binder.BindInt64(ev.EventTimeMs),
	)
	if err != nil {
		return 0, err
	}
	for _, step := range path {
		if err := e.InsertEventPath(id, step); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// InsertEventPath appends one ordered step row to event_id's path. Each
// step carries either step_index (int) or step_key (string), with the
// other NULL, selected by step.Kind (spec.md §3, §4.2).
func (e *Executor) InsertEventPath(eventID int64, step types.EventPathStep) error {
	isIndexLit := e.binder.BindBool(step.Kind == types.StepIndex, e.config.Dialect.TrueLiteral(), e.config.Dialect.FalseLiteral())
	indexLit, keyLit := "NULL", "NULL"
	if step.Kind == types.StepIndex {
		indexLit = e.binder.BindInt64(step.Index)
	} else {
		keyLit = e.binder.BindString(step.Key)
	}
	_, err := e.query("insert_event_path", e.binder.BindInt64(eventID), isIndexLit, indexLit, keyLit)
	return err
}

// SelectEventByArtifactIDs returns the Event rows linking any of
// artifactIDs to an execution (the read side of the artifact→execution
// relation; spec.md is silent on the read path, supplied per
// SPEC_FULL §3 from the original's SelectEventByArtifactIDs). Empty
// artifactIDs short-circuits without touching the driver.
func (e *Executor) SelectEventByArtifactIDs(artifactIDs []int64) ([]*types.Event, error) {
	if len(artifactIDs) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(artifactIDs)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_event_by_artifact_ids", idList)
	if err != nil {
		return nil, err
	}
	return hydrateEvents(rs)
}

// SelectEventByExecutionIDs returns the Event rows linking any of
// executionIDs to an artifact.
func (e *Executor) SelectEventByExecutionIDs(executionIDs []int64) ([]*types.Event, error) {
	if len(executionIDs) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(executionIDs)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_event_by_execution_ids", idList)
	if err != nil {
		return nil, err
	}
	return hydrateEvents(rs)
}

// SelectEventPathsByEventIDs returns every path step belonging to any id
// in eventIDs, grouped by event id in the order the rows were stored.
func (e *Executor) SelectEventPathsByEventIDs(eventIDs []int64) (map[int64][]types.EventPathStep, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(eventIDs)
	if err != nil {
		return nil, err
	}
	rs, err := e.query("select_event_paths_by_event_ids", idList)
	if err != nil {
		return nil, err
	}
	out := make(map[int64][]types.EventPathStep, len(eventIDs))
	for _, rec := range rs.Records {
		eventID, step, err := hydrateEventPathStep(rec, rs)
		if err != nil {
			return nil, err
		}
		out[eventID] = append(out[eventID], step)
	}
	return out, nil
}

// DeleteEventsByArtifactID removes every Event row referencing
// artifactID. The caller composes this with DeleteArtifactsById to
// achieve whatever cascade it intends (spec.md §4.2).
func (e *Executor) DeleteEventsByArtifactID(artifactID int64) error {
	_, err := e.query("delete_events_by_artifact_id", e.binder.BindInt64(artifactID))
	return err
}

// DeleteEventsByExecutionID removes every Event row referencing executionID.
func (e *Executor) DeleteEventsByExecutionID(executionID int64) error {
	_, err := e.query("delete_events_by_execution_id", e.binder.BindInt64(executionID))
	return err
}

// DeleteEventPathsByEventID removes the path steps of one event,
// typically composed alongside a caller-driven Event deletion.
func (e *Executor) DeleteEventPathsByEventID(eventID int64) error {
	_, err := e.query("delete_event_paths_by_event_id", e.binder.BindInt64(eventID))
	return err
}

func hydrateEvents(rs *types.RecordSet) ([]*types.Event, error) {
	out := make([]*types.Event, 0, len(rs.Records))
	for _, rec := range rs.Records {
		ev, err := hydrateEvent(rec, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
