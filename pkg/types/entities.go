package types

// This file defines the metadata graph's entities and their essential
// attributes, per spec.md §3. Timestamps are milliseconds since Unix
// epoch (int64), matching the wire format the RecordSet carries and the
// teacher's convention of storing persisted time as the exact on-disk
// representation rather than a richer in-memory type.

// Type is a user-declared schema node for Artifacts, Executions, or
// Contexts. Executions additionally carry InputType/OutputType structural
// schema documents (see ArtifactStructType).
type Type struct {
	ID          int64
	Name        string
	Version     *string
	TypeKind    TypeKind
	Description *string
	// InputType/OutputType are only meaningful when TypeKind ==
	// ExecutionTypeKind; nil otherwise.
	InputType  *ArtifactStructType
	OutputType *ArtifactStructType
}

// TypeProperty declares one named, typed property slot on a Type.
type TypeProperty struct {
	TypeID       int64
	Name         string
	PropertyType PropertyType
}

// ParentType is a soft link from a type to its parent type. Neither side
// is referentially enforced against Type existence (spec.md §3, §9).
type ParentType struct {
	TypeID       int64
	ParentTypeID int64
}

// Artifact is a produced data blob identified by URI.
type Artifact struct {
	ID             int64
	TypeID         int64
	URI            string
	State          *ArtifactState
	Name           *string
	CreateTimeMs   int64
	UpdateTimeMs   int64
}

// Execution is a recorded process run.
type Execution struct {
	ID              int64
	TypeID          int64
	LastKnownState  *ExecutionState
	Name            *string
	CreateTimeMs    int64
	UpdateTimeMs    int64
}

// Context is a grouping construct (experiment, pipeline run) over
// artifacts and executions. Name is unique within TypeID.
type Context struct {
	ID           int64
	TypeID       int64
	Name         string
	CreateTimeMs int64
	UpdateTimeMs int64
}

// Property is one typed value row owned by an Artifact, Execution, or
// Context. Exactly one of IntValue/DoubleValue/StringValue is populated;
// the discriminator is carried by Value.DataType (see value.go) and is
// not duplicated here — Property is the persisted row shape, Value is the
// in-memory sum type bound into it.
type Property struct {
	OwnerID        int64
	Name           string
	IsCustomProperty bool
	Value          Value
}

// Event links an Artifact to an Execution with a typed role and
// timestamp.
type Event struct {
	ID             int64
	ArtifactID     int64
	ExecutionID    int64
	Type           EventType
	EventTimeMs    int64
}

// EventPathStepKind distinguishes an EventPathStep's populated field.
type EventPathStepKind int

const (
	StepIndex EventPathStepKind = iota
	StepKey
)

// EventPathStep is one ordered step of an Event's path. Exactly one of
// Index/Key is meaningful, selected by Kind.
type EventPathStep struct {
	Kind  EventPathStepKind
	Index int64
	Key   string
}

// Attribution is a context-to-artifact link.
type Attribution struct {
	ID         int64
	ContextID  int64
	ArtifactID int64
}

// Association is a context-to-execution link.
type Association struct {
	ID          int64
	ContextID   int64
	ExecutionID int64
}

// ParentContext is a soft, directed link from a parent context to a
// child context (spec.md §1, §9 — same non-enforced semantics as
// ParentType).
type ParentContext struct {
	ParentID int64
	ChildID  int64
}
