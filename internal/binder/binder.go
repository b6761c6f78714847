// Package binder turns typed Go values into the SQL text fragments the
// query executor splices into its templates (spec.md §4.1). Binding
// itself never fails: an invalid caller contract (e.g. an out-of-range
// PropertyType) produces garbage SQL rather than an error, because by
// the time a value reaches the binder the caller has already agreed to
// the contract. The two sanctioned failures are binding an empty id
// list, which must be short-circuited by the caller rather than bound,
// and a structural schema document that protojson cannot marshal.
//
// Grounded stylistically on the teacher's per-entity hydrate/dehydrate
// helpers (internal/sqlite/crumbs_table.go): small, single-purpose
// functions named after the Go type they consume, not a generic
// reflection-based marshaler.
package binder

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/CandiedCode/ml-metadata/pkg/metadatasource"
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// Binder renders Go values to SQL text against one MetadataSource's
// string-escaping rules. It holds no other state and is safe to share
// across goroutines despite the executor itself being single-threaded,
// since EscapeString on a live connection is assumed read-only.
type Binder struct {
	source metadatasource.MetadataSource
}

// New returns a Binder that escapes strings using source's dialect.
func New(source metadatasource.MetadataSource) *Binder {
	return &Binder{source: source}
}

// BindString renders a Go string as a quoted SQL literal.
func (b *Binder) BindString(s string) string {
	return b.source.EscapeString(s)
}

// BindStringPtr renders an optional string: NULL when nil, else the
// same as BindString.
func (b *Binder) BindStringPtr(s *string) string {
	if s == nil {
		return "NULL"
	}
	return b.BindString(*s)
}

// BindInt64 renders an int64 literal.
func (b *Binder) BindInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// BindInt64Ptr renders an optional int64: NULL when nil.
func (b *Binder) BindInt64Ptr(v *int64) string {
	if v == nil {
		return "NULL"
	}
	return b.BindInt64(*v)
}

// BindDouble renders a float64 literal with enough precision to survive
// a round trip through text.
func (b *Binder) BindDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// BindBool renders a Go bool as the caller-supplied dialect literal
// (e.g. "1"/"0" for SQLite, "TRUE"/"FALSE" for MySQL); the literal
// strings themselves are a Dialect concern (internal/queryconfig), so
// the binder accepts them pre-resolved.
func (b *Binder) BindBool(v bool, trueLiteral, falseLiteral string) string {
	if v {
		return trueLiteral
	}
	return falseLiteral
}

// BindTypeKind renders a TypeKind as its stable integer wire value.
func (b *Binder) BindTypeKind(k types.TypeKind) string {
	return strconv.Itoa(int(k))
}

// BindPropertyType renders a PropertyType as its stable integer wire
// value. Callers must not pass UnknownPropertyType; the binder does not
// check because binding never fails.
func (b *Binder) BindPropertyType(p types.PropertyType) string {
	return strconv.Itoa(int(p))
}

// BindArtifactState renders an optional ArtifactState: NULL when nil.
func (b *Binder) BindArtifactState(s *types.ArtifactState) string {
	if s == nil {
		return "NULL"
	}
	return strconv.Itoa(int(*s))
}

// BindExecutionState renders an optional ExecutionState: NULL when nil.
func (b *Binder) BindExecutionState(s *types.ExecutionState) string {
	if s == nil {
		return "NULL"
	}
	return strconv.Itoa(int(*s))
}

// BindEventType renders an EventType as its caller-defined integer.
func (b *Binder) BindEventType(t types.EventType) string {
	return strconv.Itoa(int(t))
}

// BindInt64List renders a non-empty id list as "(v1, v2, ...)" suitable
// for splicing after an IN keyword. Callers must check for an empty
// list themselves and short-circuit the whole query (e.g. return a
// empty RecordSet without ever reaching SQL); passing one here returns
// ErrEmptyList rather than emitting invalid SQL like "IN ()" (spec.md
// §4.1 edge case, §8 property 4).
func (b *Binder) BindInt64List(ids []int64) (string, error) {
	if len(ids) == 0 {
		return "", types.ErrEmptyList
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

// BindArtifactStructType renders a structural schema document as a
// quoted JSON string literal via protojson, or NULL when t/t.Struct is
// nil. This is the only place in the module that serializes an
// ArtifactStructType to text.
func (b *Binder) BindArtifactStructType(t *types.ArtifactStructType) (string, error) {
	if t == nil || t.Struct == nil {
		return "NULL", nil
	}
	data, err := protojson.Marshal(t.Struct)
	if err != nil {
		return "", fmt.Errorf("binder: marshal ArtifactStructType: %w", err)
	}
	return b.BindString(string(data)), nil
}

// BindValue renders a Property's Value as the literal for whichever of
// int_value/double_value/string_value its DataType selects.
func (b *Binder) BindValue(v types.Value) string {
	switch v.DataType {
	case types.IntPropertyType:
		return b.BindInt64(v.IntValue)
	case types.DoublePropertyType:
		return b.BindDouble(v.DoubleValue)
	case types.StringPropertyType:
		return b.BindString(v.StringValue)
	default:
		return "NULL"
	}
}

// BindDataType renders a Value's DataType discriminator as its integer
// wire value, for the sibling column that says which of the three value
// columns is meaningful.
func (b *Binder) BindDataType(v types.Value) string {
	return strconv.Itoa(int(v.DataType))
}
