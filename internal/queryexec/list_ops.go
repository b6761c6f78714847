package queryexec

import (
	"github.com/CandiedCode/ml-metadata/internal/listops"
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// listIDs is the shared body of List{Artifact,Execution,Context}IDs:
// build the planner's query against table, run it, and turn the result
// back into a page (spec.md §4.4). candidateIDs nil means unrestricted;
// an explicit empty slice (listops.NoCandidates) matches nothing and is
// answered without a driver round trip.
func (e *Executor) listIDs(table string, candidateIDs []int64, opts types.ListOperationOptions) (types.ListResult, error) {
	if listops.NoCandidates(candidateIDs) {
		return types.ListResult{}, nil
	}
	sql, err := e.lister.BuildQuery(table, candidateIDs, opts)
	if err != nil {
		return types.ListResult{}, err
	}
	rs, err := e.source.ExecuteQuery(sql)
	if err != nil {
		return types.ListResult{}, types.NewInternal("queryexec: list "+table, err)
	}
	return e.lister.ExtractPage(rs, opts)
}

// ListArtifactIDs pages through Artifact ids, optionally restricted to
// candidateIDs and filtered by opts.FilterQuery (the only entity
// spec.md §4.4 allows a filter_query on).
func (e *Executor) ListArtifactIDs(candidateIDs []int64, opts types.ListOperationOptions) (types.ListResult, error) {
	return e.listIDs("Artifact", candidateIDs, opts)
}

// ListExecutionIDs pages through Execution ids restricted to candidateIDs.
func (e *Executor) ListExecutionIDs(candidateIDs []int64, opts types.ListOperationOptions) (types.ListResult, error) {
	opts.FilterQuery = ""
	return e.listIDs("Execution", candidateIDs, opts)
}

// ListContextIDs pages through Context ids restricted to candidateIDs.
func (e *Executor) ListContextIDs(candidateIDs []int64, opts types.ListOperationOptions) (types.ListResult, error) {
	opts.FilterQuery = ""
	return e.listIDs("Context", candidateIDs, opts)
}
