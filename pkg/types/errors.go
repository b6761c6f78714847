// Package types defines the data model, enum wire values, and error
// taxonomy shared by the query executor, the binder, and the schema
// lifecycle manager.
// Grounded on the teacher's pkg/types/table.go sentinel-error convention,
// generalized to the closed Kind taxonomy of spec.md §7.
package types

import (
	"errors"
	"fmt"
)

// Kind classifies an Error the way callers are expected to branch on it.
// The zero value is never returned by this package.
type Kind int

const (
	_ Kind = iota
	// FailedPrecondition: no open transaction, or schema newer than library.
	FailedPrecondition
	// Internal: underlying SQL execution error; message propagated.
	Internal
	// AlreadyExists: uniqueness violation on insert.
	AlreadyExists
	// NotFound: select-by-id returned zero rows where the API guarantees one.
	NotFound
	// InvalidArgument: malformed list options, illegal values, bad filters.
	InvalidArgument
	// DataLoss: ambiguous legacy-schema probe during Init.
	DataLoss
	// Unimplemented: operation unsupported by this executor variant.
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case FailedPrecondition:
		return "FailedPrecondition"
	case Internal:
		return "Internal"
	case AlreadyExists:
		return "AlreadyExists"
	case NotFound:
		return "NotFound"
	case InvalidArgument:
		return "InvalidArgument"
	case DataLoss:
		return "DataLoss"
	case Unimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// Error is the Kind-tagged error type the query executor's operations
// and the reference MetadataSource's transaction calls return. Template
// loading (queryconfig.Load, and so queryexec.New), the binder's
// ErrEmptyList sentinel and the reference source's query and
// LastInsertID failures are plain errors. Callers branch on Kind via
// errors.As or IsKind, not on message text.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause (e.g. the driver's error)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target has the same Kind, so callers can do
// errors.Is(err, &types.Error{Kind: types.NotFound}) without matching
// a message.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return te.Kind == e.Kind
	}
	return false
}

func newErr(k Kind, msg string) *Error            { return &Error{Kind: k, Msg: msg} }
func wrapErr(k Kind, msg string, err error) *Error { return &Error{Kind: k, Msg: msg, Err: err} }

// NewFailedPrecondition builds a FailedPrecondition error.
func NewFailedPrecondition(msg string) *Error { return newErr(FailedPrecondition, msg) }

// NewInternal wraps an underlying driver/SQL error.
func NewInternal(msg string, err error) *Error { return wrapErr(Internal, msg, err) }

// NewAlreadyExists builds an AlreadyExists error.
func NewAlreadyExists(msg string) *Error { return newErr(AlreadyExists, msg) }

// NewNotFound builds a NotFound error.
func NewNotFound(msg string) *Error { return newErr(NotFound, msg) }

// NewInvalidArgument builds an InvalidArgument error.
func NewInvalidArgument(msg string) *Error { return newErr(InvalidArgument, msg) }

// NewDataLoss builds a DataLoss error.
func NewDataLoss(msg string) *Error { return newErr(DataLoss, msg) }

// NewUnimplemented builds an Unimplemented error.
func NewUnimplemented(msg string) *Error { return newErr(Unimplemented, msg) }

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// Sentinel call-pattern errors: these are programmer-contract violations
// discoverable without a backend round trip, kept as plain sentinels the
// way the teacher keeps ErrInvalidID/ErrInvalidData as package vars.
var (
	// ErrEmptyList is returned by callers that attempt to bind an empty
	// list into an IN(...) clause; §4.1 requires short-circuiting instead.
	ErrEmptyList = errors.New("binder: list must not be empty, caller must short-circuit")
)
