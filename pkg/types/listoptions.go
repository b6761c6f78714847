package types

// OrderByField selects the sort key for a List Operation (spec.md §4.4).
type OrderByField int

const (
	OrderByCreateTime OrderByField = iota
	OrderByUpdateTime
	OrderByID
)

func (f OrderByField) String() string {
	switch f {
	case OrderByCreateTime:
		return "CREATE_TIME"
	case OrderByUpdateTime:
		return "UPDATE_TIME"
	case OrderByID:
		return "ID"
	default:
		return "UNKNOWN_ORDER_BY_FIELD"
	}
}

// ListOperationOptions drives one page of a List Operation. Exactly one of
// NextPageToken or (no token, first page) applies; FilterQuery is only
// honored for Artifact listings (spec.md §4.4 edge cases).
type ListOperationOptions struct {
	OrderByField  OrderByField
	IsAsc         bool
	MaxResultSize int32
	NextPageToken string
	FilterQuery   string
}

// PageToken is the decoded cursor carried by ListOperationOptions.NextPageToken.
// It captures the last-seen (field value, id) pair of the previous page, the
// field/direction the page was produced with, and the filter query it was
// produced under, so a later page request can be validated against the same
// listing it was created from: a token that does not decode, or whose order,
// direction or filter differs, is InvalidArgument, not silently ignored. The
// candidate-id restriction is not recorded in the token and is not checked.
type PageToken struct {
	OrderByField   OrderByField
	IsAsc          bool
	LastFieldValue string
	LastID         int64
	FilterQuery    string
}

// ListResult is one page produced by the List Operation Planner: the
// matching ids in (field, id) tie-broken order, and the token for the next
// page, empty when this page was the last.
type ListResult struct {
	IDs           []int64
	NextPageToken string
}
