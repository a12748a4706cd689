package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/queryir"
	"github.com/roach88/stylec/internal/querysql"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ReadRules returns every registered rule.
// Results are ordered deterministically: ORDER BY seq ASC, slug ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the registry is empty.
func (s *Store) ReadRules(ctx context.Context) ([]Rule, error) {
	return s.QueryRules(ctx, queryir.Select{})
}

// ReadRunRules returns the rules first registered by a run, in the same
// order as ReadRules.
func (s *Store) ReadRunRules(ctx context.Context, runID string) ([]Rule, error) {
	return s.QueryRules(ctx, queryir.Select{
		Filter: queryir.Equals{Field: queryir.FieldRun, Value: ir.String(runID)},
	})
}

// QueryRules returns the rules matching q, in the same order as ReadRules.
func (s *Store) QueryRules(ctx context.Context, q queryir.Query) ([]Rule, error) {
	query, params, err := querysql.Compile(q)
	if err != nil {
		return nil, err
	}
	return s.queryRules(ctx, query, params...)
}

func (s *Store) queryRules(ctx context.Context, query string, args ...any) ([]Rule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	rules := []Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}

func scanRule(row rowScanner) (Rule, error) {
	var (
		rule       Rule
		conditions string
	)
	err := row.Scan(&rule.Seq, &rule.Slug, &rule.ClassName, &conditions,
		&rule.Decl.Property, &rule.Decl.Abbreviation, &rule.Decl.Value, &rule.RunID)
	if err != nil {
		return Rule{}, fmt.Errorf("scan rule: %w", err)
	}
	rule.Decl.Conditions, err = unmarshalConditions(conditions)
	if err != nil {
		return Rule{}, fmt.Errorf("decode conditions of %q: %w", rule.Slug, err)
	}
	return rule, nil
}

// ReadCompilation retrieves a compilation with its rules in class name order.
// Returns ErrNotFound if no compilation has the id.
func (s *Store) ReadCompilation(ctx context.Context, id string) (Compilation, error) {
	var (
		c        Compilation
		treeJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, id, run_id, preset_digest, tree, class_name
		FROM compilations
		WHERE id = ?
	`, id).Scan(&c.Seq, &c.ID, &c.RunID, &c.PresetDigest, &treeJSON, &c.ClassName)
	if errors.Is(err, sql.ErrNoRows) {
		return Compilation{}, ErrNotFound
	}
	if err != nil {
		return Compilation{}, fmt.Errorf("read compilation %s: %w", id, err)
	}

	tree := ir.NewObject()
	if err := tree.UnmarshalJSON([]byte(treeJSON)); err != nil {
		return Compilation{}, fmt.Errorf("decode tree of %s: %w", id, err)
	}
	c.Tree = tree

	c.Rules, err = s.queryRules(ctx, `
		SELECT r.seq, r.slug, r.class_name, r.conditions, r.property, r.abbreviation, r.value, r.run_id
		FROM compilation_rules cr
		JOIN rules r ON r.slug = cr.slug
		WHERE cr.compilation_id = ?
		ORDER BY cr.position ASC
	`, id)
	if err != nil {
		return Compilation{}, err
	}
	return c, nil
}

// ReadRun retrieves a run and the ids of the compilations it wrote.
// Returns ErrNotFound if no run has the id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, id, preset_digest, tool_version, slug_format
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.Seq, &run.ID, &run.PresetDigest, &run.ToolVersion, &run.SlugFormat)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM compilations
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, id)
	if err != nil {
		return Run{}, fmt.Errorf("query compilations of run %s: %w", id, err)
	}
	defer rows.Close()

	run.CompilationIDs = []string{}
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return Run{}, fmt.Errorf("scan compilation id: %w", err)
		}
		run.CompilationIDs = append(run.CompilationIDs, cid)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate compilations of run %s: %w", id, err)
	}
	return run, nil
}
