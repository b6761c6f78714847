// Package queryconfig loads the declarative, per-dialect SQL template
// bundles the query executor fills with binder-rendered literals
// (spec.md §4.2, §4.3). Each bundle names every operation's statement,
// the schema version it targets, and the forward migration (and
// best-effort downgrade) scripts between schema versions.
//
// Grounded on the teacher's internal/sqlite/schema.go DDL-as-constants
// approach, generalized to data so SQLite and MySQL dialects can share
// the loader and differ only in their YAML content, and on the rest of
// the pack's convention (gopkg.in/yaml.v3) for declarative configuration.
package queryconfig

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates/sqlite.yaml templates/mysql.yaml
var templateFS embed.FS

// MigrationStep upgrades a schema from version From to From+1.
type MigrationStep struct {
	From       int64    `yaml:"from"`
	Statements []string `yaml:"statements"`
}

// DowngradeStep downgrades a schema from From to To. Omitted (From, To)
// pairs have no supported downgrade (spec.md §4.3: downgrade is
// optional and may legitimately refuse).
type DowngradeStep struct {
	From       int64    `yaml:"from"`
	To         int64    `yaml:"to"`
	Statements []string `yaml:"statements"`
}

// bundle is the raw YAML shape; QueryConfig wraps it with the
// resolved Dialect and a few lookup conveniences.
type bundle struct {
	SchemaVersion int64             `yaml:"schema_version"`
	DDL           []string          `yaml:"ddl"`
	Queries       map[string]string `yaml:"queries"`
	Migrations    []MigrationStep   `yaml:"migrations"`
	Downgrades    []DowngradeStep   `yaml:"downgrades"`
}

// QueryConfig is one dialect's fully-loaded template bundle: the schema
// DDL, the named query templates, and the migration/downgrade scripts,
// bound to the Dialect that produced it.
type QueryConfig struct {
	Dialect       Dialect
	SchemaVersion int64
	DDL           []string
	Queries       map[string]string
	Migrations    []MigrationStep
	Downgrades    []DowngradeStep
}

// Load reads and parses the embedded template bundle for the named
// dialect ("sqlite" or "mysql").
func Load(dialectName string) (*QueryConfig, error) {
	dialect, ok := DialectByName(dialectName)
	if !ok {
		return nil, fmt.Errorf("queryconfig: unknown dialect %q", dialectName)
	}

	raw, err := templateFS.ReadFile("templates/" + dialectName + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("queryconfig: read bundle for %q: %w", dialectName, err)
	}

	var b bundle
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("queryconfig: parse bundle for %q: %w", dialectName, err)
	}

	return &QueryConfig{
		Dialect:       dialect,
		SchemaVersion: b.SchemaVersion,
		DDL:           b.DDL,
		Queries:       b.Queries,
		Migrations:    b.Migrations,
		Downgrades:    b.Downgrades,
	}, nil
}

// Query returns the named template, formatted with args via fmt.Sprintf.
// Every %s verb in the template corresponds to one already-bound SQL
// literal from internal/binder; Query never itself escapes or quotes.
func (c *QueryConfig) Query(name string, args ...any) (string, error) {
	tmpl, ok := c.Queries[name]
	if !ok {
		return "", fmt.Errorf("queryconfig: no template named %q for dialect %s", name, c.Dialect.Name())
	}
	return fmt.Sprintf(tmpl, args...), nil
}

// MigrationsFrom returns, in order, the migration steps required to
// bring a database at fromVersion up to c.SchemaVersion. An empty slice
// with fromVersion == c.SchemaVersion means no migration is needed.
func (c *QueryConfig) MigrationsFrom(fromVersion int64) ([]MigrationStep, error) {
	if fromVersion > c.SchemaVersion {
		return nil, fmt.Errorf("queryconfig: schema version %d is newer than this executor's %d", fromVersion, c.SchemaVersion)
	}
	byFrom := make(map[int64]MigrationStep, len(c.Migrations))
	for _, m := range c.Migrations {
		byFrom[m.From] = m
	}
	var steps []MigrationStep
	for v := fromVersion; v < c.SchemaVersion; v++ {
		step, ok := byFrom[v]
		if !ok {
			return nil, fmt.Errorf("queryconfig: no migration step registered from version %d", v)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Downgrade returns the downgrade step from fromVersion to toVersion, if
// one is registered. Downgrading is never chained across more than one
// registered step; a caller needing a multi-step downgrade must call
// this repeatedly and accept that an intermediate version may refuse.
func (c *QueryConfig) Downgrade(fromVersion, toVersion int64) (DowngradeStep, bool) {
	for _, d := range c.Downgrades {
		if d.From == fromVersion && d.To == toVersion {
			return d, true
		}
	}
	return DowngradeStep{}, false
}
