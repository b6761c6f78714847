// Package listops implements the List Operation Planner (spec.md §4.4):
// given a candidate-id restriction and paging options, it builds the
// SQL fragment that restricts, orders, and paginates a listing, and
// turns a fetched RecordSet back into an id page plus the token for the
// next one.
//
// Grounded stylistically on the teacher's per-entity accessor files
// (internal/sqlite/crumbs_table.go's small, single-purpose Get/Set/Fetch
// methods): the planner is one small type with one job, not a generic
// query-builder DSL.
package listops

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/CandiedCode/ml-metadata/internal/binder"
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// columnFor maps an OrderByField to the column it sorts on. Every listed
// entity (Artifact, Execution, Context) carries all three columns under
// these exact names (see internal/queryconfig's DDL).
func columnFor(f types.OrderByField) (string, bool) {
	switch f {
	case types.OrderByCreateTime:
		return "create_time_since_epoch", true
	case types.OrderByUpdateTime:
		return "last_update_time_since_epoch", true
	case types.OrderByID:
		return "id", true
	default:
		return "", false
	}
}

// Planner builds list queries against one Binder's escaping rules.
type Planner struct {
	binder *binder.Binder
}

// New returns a Planner that escapes string literals via b.
func New(b *binder.Binder) *Planner {
	return &Planner{binder: b}
}

// NoCandidates reports whether candidateIDs represents an explicit,
// already-known-empty restriction set (as opposed to nil, meaning "no
// restriction"). The caller must check this before calling BuildQuery:
// an empty restriction can never match any row, and the binder refuses
// to render "IN ()" (spec.md §4.1, §4.4).
func NoCandidates(candidateIDs []int64) bool {
	return candidateIDs != nil && len(candidateIDs) == 0
}

// BuildQuery returns the full SELECT statement listing ids from table,
// restricted to candidateIDs (nil means unrestricted), ordered and
// paginated per opts. Callers must call NoCandidates first; BuildQuery
// assumes candidateIDs is either nil or non-empty.
func (p *Planner) BuildQuery(table string, candidateIDs []int64, opts types.ListOperationOptions) (string, error) {
	if opts.MaxResultSize <= 0 {
		return "", types.NewInvalidArgument("listops: max_result_size must be positive")
	}
	col, ok := columnFor(opts.OrderByField)
	if !ok {
		return "", types.NewInvalidArgument("listops: unknown order_by_field")
	}

	dir := "DESC"
	cmp := "<"
	if opts.IsAsc {
		dir = "ASC"
		cmp = ">"
	}

	sql := fmt.Sprintf("SELECT id, %s FROM %s WHERE 1=1", col, table)

	if candidateIDs != nil {
		idList, err := p.binder.BindInt64List(candidateIDs)
		if err != nil {
			return "", err
		}
		sql += " AND id IN " + idList
	}

	if opts.FilterQuery != "" {
		sql += " AND (" + opts.FilterQuery + ")"
	}

	if opts.NextPageToken != "" {
		tok, err := DecodeToken(opts.NextPageToken)
		if err != nil {
			return "", types.NewInvalidArgument("listops: malformed page token: " + err.Error())
		}
		if tok.OrderByField != opts.OrderByField || tok.IsAsc != opts.IsAsc || tok.FilterQuery != opts.FilterQuery {
			return "", types.NewInvalidArgument("listops: page token does not match this listing's order/filter")
		}
		fieldLit := p.binder.BindString(tok.LastFieldValue)
		sql += fmt.Sprintf(" AND (%s %s %s OR (%s = %s AND id %s %d))",
			col, cmp, fieldLit, col, fieldLit, cmp, tok.LastID)
	}

	sql += fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT %d;", col, dir, dir, opts.MaxResultSize+1)
	return sql, nil
}

// ExtractPage turns the RecordSet produced by BuildQuery's statement
// into a page of at most opts.MaxResultSize ids plus the token for the
// next page, empty when this was the last page.
func (p *Planner) ExtractPage(rs *types.RecordSet, opts types.ListOperationOptions) (types.ListResult, error) {
	col, ok := columnFor(opts.OrderByField)
	if !ok {
		return types.ListResult{}, types.NewInvalidArgument("listops: unknown order_by_field")
	}
	idIdx := rs.GetIdColumnIndex()
	fieldIdx := rs.GetColumnIndex(col)
	if idIdx < 0 || fieldIdx < 0 {
		return types.ListResult{}, types.NewInternal("listops: result set missing id or order column", nil)
	}

	n := len(rs.Records)
	hasMore := n > int(opts.MaxResultSize)
	if hasMore {
		n = int(opts.MaxResultSize)
	}

	result := types.ListResult{IDs: make([]int64, 0, n)}
	for i := 0; i < n; i++ {
		id, err := parseInt64(rs.Records[i].Values[idIdx])
		if err != nil {
			return types.ListResult{}, types.NewInternal("listops: parse id column", err)
		}
		result.IDs = append(result.IDs, id)
	}

	if hasMore {
		last := rs.Records[n-1]
		lastID, err := parseInt64(last.Values[idIdx])
		if err != nil {
			return types.ListResult{}, types.NewInternal("listops: parse boundary id", err)
		}
		token := types.PageToken{
			OrderByField:   opts.OrderByField,
			IsAsc:          opts.IsAsc,
			LastFieldValue: last.Values[fieldIdx],
			LastID:         lastID,
			FilterQuery:    opts.FilterQuery,
		}
		encoded, err := EncodeToken(token)
		if err != nil {
			return types.ListResult{}, err
		}
		result.NextPageToken = encoded
	}
	return result, nil
}

// EncodeToken renders a PageToken as an opaque, URL-safe string.
func EncodeToken(t types.PageToken) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", types.NewInternal("listops: encode page token", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeToken reverses EncodeToken.
func DecodeToken(s string) (types.PageToken, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return types.PageToken{}, err
	}
	var t types.PageToken
	if err := json.Unmarshal(data, &t); err != nil {
		return types.PageToken{}, err
	}
	return t, nil
}

func parseInt64(s string) (int64, error) {
	var v int64
	_, err := fmt.Sscanf(s, "%d", &v)
	return v, err
}
