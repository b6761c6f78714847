// Package queryexec implements the QueryExecutor: the translation layer
// between the abstract metadata-access API and the SQL a MetadataSource
// runs (spec.md §4.2). It owns no connection and no transaction state of
// its own — both belong to the injected MetadataSource — and is not
// safe for concurrent use by more than one goroutine at a time (spec.md
// §5).
//
// Grounded on the teacher's per-entity-file accessor layout
// (internal/sqlite/crumbs_table.go, properties_table.go): one file per
// entity family, small hydrate helpers converting a RecordSet row into
// a pkg/types struct, doc comments only where the behavior is
// non-obvious.
package queryexec

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/CandiedCode/ml-metadata/internal/binder"
	"github.com/CandiedCode/ml-metadata/internal/listops"
	"github.com/CandiedCode/ml-metadata/internal/queryconfig"
	"github.com/CandiedCode/ml-metadata/pkg/metadatasource"
	"github.com/CandiedCode/ml-metadata/pkg/types"
)

// Executor translates metadata-store operations into SQL against one
// MetadataSource, using one QueryConfig's dialect-specific templates.
type Executor struct {
	source metadatasource.MetadataSource
	config *queryconfig.QueryConfig
	binder *binder.Binder
	lister *listops.Planner
	log    zerolog.Logger
	metrics *metricsSet
}

// Option configures an Executor at construction time.
type Option func(*Executor)

// WithLogger overrides the executor's zerolog.Logger. The default is a
// disabled logger (zerolog.Nop()), matching spec.md §1's exclusion of
// logging as a collaborator the core itself configures.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithMetricsRegisterer registers the executor's prometheus collectors
// against reg. If never called, metrics are collected but never
// exposed, matching the teacher's pattern of an injectable, optional
// observability surface.
func WithMetricsRegisterer(reg prometheusRegisterer) Option {
	return func(e *Executor) { e.metrics.register(reg) }
}

// New builds an Executor over source, using the named dialect's
// template bundle ("sqlite" or "mysql").
func New(source metadatasource.MetadataSource, dialectName string, opts ...Option) (*Executor, error) {
	cfg, err := queryconfig.Load(dialectName)
	if err != nil {
		return nil, err
	}
	b := binder.New(source)
	e := &Executor{
		source:  source,
		config:  cfg,
		binder:  b,
		lister:  listops.New(b),
		log:     zerolog.Nop(),
		metrics: newMetricsSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// query runs the named template filled with args and returns its
// RecordSet, translating a driver-level failure into an Internal error.
func (e *Executor) query(name string, args ...any) (*types.RecordSet, error) {
	sqlText, err := e.config.Query(name, args...)
	if err != nil {
		return nil, types.NewInternal("queryexec: build query "+name, err)
	}
	e.log.Debug().Str("template", name).Msg("executing query")
	rs, err := e.source.ExecuteQuery(sqlText)
	if err != nil {
		e.metrics.queryErrors.WithLabelValues(name).Inc()
		return nil, types.NewInternal("queryexec: execute query "+name, err)
	}
	e.metrics.queryTotal.WithLabelValues(name).Inc()
	return rs, nil
}

// insertAndGetID runs an INSERT template then recovers the inserted
// row's id via the MetadataSource's LastInsertID accessor, matching the
// Dialect split between SQLite's last_insert_rowid and MySQL's
// LAST_INSERT_ID (spec.md §4.2, §4.3).
func (e *Executor) insertAndGetID(name string, args ...any) (int64, error) {
	if _, err := e.query(name, args...); err != nil {
		return 0, mapConstraintError(err)
	}
	id, err := e.source.LastInsertID()
	if err != nil {
		return 0, types.NewInternal("queryexec: recover last insert id", err)
	}
	return id, nil
}

// mapConstraintError reclassifies a raw driver uniqueness-violation error
// as AlreadyExists (spec.md §4.2, §7). Neither dialect's driver reports a
// portable error code through the MetadataSource boundary, so this
// recognizes the stable, well-known substrings each driver's error text
// carries for a UNIQUE violation: modernc.org/sqlite's
// "UNIQUE constraint failed" and MySQL's "Duplicate entry" (error 1062).
// Detecting by message text, rather than importing a driver package here,
// keeps the executor from assuming a specific driver (spec.md §1).
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry") {
		return types.NewAlreadyExists("queryexec: duplicate key")
	}
	return err
}

// mustColumn looks up a required column index, returning an Internal
// error (never NotFound) if the backend's result shape doesn't match
// what the template promised — that is a template/DDL mismatch, never a
// legitimate "no such row" condition.
func mustColumn(rs *types.RecordSet, name string) (int, error) {
	idx := rs.GetColumnIndex(name)
	if idx < 0 {
		return 0, types.NewInternal("queryexec: missing column "+name, nil)
	}
	return idx, nil
}
