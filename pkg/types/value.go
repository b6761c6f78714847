package types

import "google.golang.org/protobuf/types/known/structpb"

// Value is the in-memory sum type for a property's admissible shapes
// (spec.md §3, §4.1: "exactly-one-of {int_value, double_value,
// string_value}"). Exactly one of IntValue/DoubleValue/StringValue is
// read; DataType says which. Constructing a Value directly with an
// inconsistent DataType is a caller contract violation — the Binder does
// not validate it (spec.md §4.1: "binding never fails").
type Value struct {
	DataType    PropertyType
	IntValue    int64
	DoubleValue float64
	StringValue string
}

// IntValueOf builds an INT-typed Value.
func IntValueOf(v int64) Value { return Value{DataType: IntPropertyType, IntValue: v} }

// DoubleValueOf builds a DOUBLE-typed Value.
func DoubleValueOf(v float64) Value { return Value{DataType: DoublePropertyType, DoubleValue: v} }

// StringValueOf builds a STRING-typed Value.
func StringValueOf(v string) Value { return Value{DataType: StringPropertyType, StringValue: v} }

// ArtifactStructType is the structural schema document carried by an
// Execution Type's InputType/OutputType (spec.md §3). It is modeled as a
// protobuf Struct (google.golang.org/protobuf/types/known/structpb) so it
// has a stable, generated wire representation; the Binder renders it to
// text via protojson (see internal/binder). This mirrors the real
// ml-metadata project's protobuf-oneof ArtifactStructType without
// hand-authoring generated code for a oneof this module does not need to
// interpret, only store and round-trip.
type ArtifactStructType struct {
	Struct *structpb.Struct
}
