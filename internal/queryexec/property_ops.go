package queryexec

import "github.com/CandiedCode/ml-metadata/pkg/types"

// propertyTemplates names the insert/update/select/delete-one/delete-all
// templates for one owning entity's property table (ArtifactProperty,
// ExecutionProperty, or ContextProperty). Folding the three nearly
// identical families into one table-driven dispatch matches the
// teacher's pattern of routing by entity kind (internal/sqlite/table.go)
// rather than hand-duplicating three copies of the same five functions.
type propertyTemplates struct {
	ownerColumn string
	insert      string
	update      string
	selectBy    string
	deleteOne   string
	deleteAll   string
}

var (
	artifactPropertyTemplates = propertyTemplates{
		ownerColumn: "artifact_id",
		insert:      "insert_artifact_property",
		update:      "update_artifact_property",
		selectBy:    "select_artifact_properties_by_artifact_id",
		deleteOne:   "delete_artifact_property",
		deleteAll:   "delete_artifact_properties_by_artifact_id",
	}
	executionPropertyTemplates = propertyTemplates{
		ownerColumn: "execution_id",
		insert:      "insert_execution_property",
		update:      "update_execution_property",
		selectBy:    "select_execution_properties_by_execution_id",
		deleteOne:   "delete_execution_property",
		deleteAll:   "delete_execution_properties_by_execution_id",
	}
	contextPropertyTemplates = propertyTemplates{
		ownerColumn: "context_id",
		insert:      "insert_context_property",
		update:      "update_context_property",
		selectBy:    "select_context_properties_by_context_id",
		deleteOne:   "delete_context_property",
		deleteAll:   "delete_context_properties_by_context_id",
	}
)

// insertProperty writes one typed value row; exactly one of
// int_value/double_value/string_value is populated, per the property's
// DataType discriminator (spec.md §3, §4.2).
func (e *Executor) insertProperty(tpl propertyTemplates, ownerID int64, name string, isCustom bool, value types.Value) error {
	intLit, doubleLit, stringLit := propertyValueLiterals(e, value)
	_, err := e.query(tpl.insert,
		e.binder.BindInt64(ownerID),
		e.binder.BindString(name),
		e.binder.BindBool(isCustom, e.config.Dialect.TrueLiteral(), e.config.Dialect.FalseLiteral()),
		intLit, doubleLit, stringLit,
	)
	return err
}

// updateProperty overwrites the value columns of one existing property
// row, keyed by (ownerID, name, isCustom).
func (e *Executor) updateProperty(tpl propertyTemplates, ownerID int64, name string, isCustom bool, value types.Value) error {
	intLit, doubleLit, stringLit := propertyValueLiterals(e, value)
	_, err := e.query(tpl.update,
		intLit, doubleLit, stringLit,
		e.binder.BindInt64(ownerID),
		e.binder.BindString(name),
		e.binder.BindBool(isCustom, e.config.Dialect.TrueLiteral(), e.config.Dialect.FalseLiteral()),
	)
	return err
}

// deleteProperty removes one named property row on ownerID. A
// non-existent (ownerID, name) is a no-op (spec.md §7).
func (e *Executor) deleteProperty(tpl propertyTemplates, ownerID int64, name string) error {
	_, err := e.query(tpl.deleteOne, e.binder.BindInt64(ownerID), e.binder.BindString(name))
	return err
}

// deletePropertiesByOwnerIDs removes every property row belonging to
// any id in ownerIDs. Empty ownerIDs is a no-op (spec.md §4.2 partial
// cascade: the property table is cleaned up alongside its owner).
func (e *Executor) deletePropertiesByOwnerIDs(tpl propertyTemplates, ownerIDs []int64) error {
	if len(ownerIDs) == 0 {
		return nil
	}
	idList, err := e.binder.BindInt64List(ownerIDs)
	if err != nil {
		return err
	}
	_, err = e.query(tpl.deleteAll, idList)
	return err
}

// selectPropertiesByOwnerIDs returns every property row for any id in
// ownerIDs. Empty ownerIDs short-circuits without touching the driver
// (spec.md §4.4/§8 property 5 generalised to property listing).
func (e *Executor) selectPropertiesByOwnerIDs(tpl propertyTemplates, ownerIDs []int64) ([]*types.Property, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	idList, err := e.binder.BindInt64List(ownerIDs)
	if err != nil {
		return nil, err
	}
	rs, err := e.query(tpl.selectBy, idList)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Property, 0, len(rs.Records))
	for _, rec := range rs.Records {
		p, err := hydrateProperty(rec, rs, tpl.ownerColumn)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// propertyValueLiterals renders the three value columns for one Value,
// together with its discriminator handled implicitly: exactly one
// column is non-NULL, matching which of INT/DOUBLE/STRING the property
// declares (spec.md §3, §4.1 bindValue/bindDataType).
func propertyValueLiterals(e *Executor, v types.Value) (intLit, doubleLit, stringLit string) {
	intLit, doubleLit, stringLit = "NULL", "NULL", "NULL"
	switch v.DataType {
	case types.IntPropertyType:
		intLit = e.binder.BindInt64(v.IntValue)
	case types.DoublePropertyType:
		doubleLit = e.binder.BindDouble(v.DoubleValue)
	case types.StringPropertyType:
		stringLit = e.binder.BindString(v.StringValue)
	}
	return
}

// InsertArtifactProperty/UpdateArtifactProperty/DeleteArtifactProperty/
// SelectArtifactPropertyByArtifactID and their Execution/Context
// namesakes are the named, per-entity surface spec.md §4.2 calls for;
// each forwards to the shared table-driven helpers above.

func (e *Executor) InsertArtifactProperty(artifactID int64, name string, isCustom bool, value types.Value) error {
	return e.insertProperty(artifactPropertyTemplates, artifactID, name, isCustom, value)
}
func (e *Executor) UpdateArtifactProperty(artifactID int64, name string, isCustom bool, value types.Value) error {
	return e.updateProperty(artifactPropertyTemplates, artifactID, name, isCustom, value)
}
func (e *Executor) DeleteArtifactProperty(artifactID int64, name string) error {
	return e.deleteProperty(artifactPropertyTemplates, artifactID, name)
}
func (e *Executor) SelectArtifactPropertyByArtifactID(artifactIDs []int64) ([]*types.Property, error) {
	return e.selectPropertiesByOwnerIDs(artifactPropertyTemplates, artifactIDs)
}

func (e *Executor) InsertExecutionProperty(executionID int64, name string, isCustom bool, value types.Value) error {
	return e.insertProperty(executionPropertyTemplates, executionID, name, isCustom, value)
}
func (e *Executor) UpdateExecutionProperty(executionID int64, name string, isCustom bool, value types.Value) error {
	return e.updateProperty(executionPropertyTemplates, executionID, name, isCustom, value)
}
func (e *Executor) DeleteExecutionProperty(executionID int64, name string) error {
	return e.deleteProperty(executionPropertyTemplates, executionID, name)
}
func (e *Executor) SelectExecutionPropertyByExecutionID(executionIDs []int64) ([]*types.Property, error) {
	return e.selectPropertiesByOwnerIDs(executionPropertyTemplates, executionIDs)
}

func (e *Executor) InsertContextProperty(contextID int64, name string, isCustom bool, value types.Value) error {
	return e.insertProperty(contextPropertyTemplates, contextID, name, isCustom, value)
}
func (e *Executor) UpdateContextProperty(contextID int64, name string, isCustom bool, value types.Value) error {
	return e.updateProperty(contextPropertyTemplates, contextID, name, isCustom, value)
}
func (e *Executor) DeleteContextProperty(contextID int64, name string) error {
	return e.deleteProperty(contextPropertyTemplates, contextID, name)
}
func (e *Executor) SelectContextPropertyByContextID(contextIDs []int64) ([]*types.Property, error) {
	return e.selectPropertiesByOwnerIDs(contextPropertyTemplates, contextIDs)
}
