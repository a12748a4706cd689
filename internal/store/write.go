package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/stylec/internal/ir"
)

// WriteRun registers a run.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("write run: empty run id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, preset_digest, tool_version, slug_format)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.PresetDigest, run.ToolVersion, run.SlugFormat)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteCompilation records a compilation and registers its rules in one
// transaction. The run referenced by RunID must exist (foreign key constraint).
//
// Idempotent on the compilation id: a compilation already recorded is left
// untouched, whichever run wrote it. Slugs already registered keep their
// first writer's seq and run.
func (s *Store) WriteCompilation(ctx context.Context, c Compilation) error {
	if c.ID == "" {
		return errors.New("write compilation: empty compilation id")
	}
	treeJSON, err := ir.MarshalValue(c.Tree)
	if err != nil {
		return fmt.Errorf("write compilation: marshal tree: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write compilation: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO compilations (id, run_id, preset_digest, tree, class_name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, c.ID, c.RunID, c.PresetDigest, string(treeJSON), c.ClassName)
	if err != nil {
		return fmt.Errorf("write compilation %s: %w", c.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("write compilation %s: %w", c.ID, err)
	} else if n == 0 {
		// already recorded
		return tx.Commit()
	}

	for i, rule := range c.Rules {
		conditions, err := marshalConditions(rule.Decl.Conditions)
		if err != nil {
			return fmt.Errorf("write rule %q: %w", rule.Slug, err)
		}
		// registered slugs are skipped before the insert; a conflicting insert
		// still consumes an AUTOINCREMENT value and leaves a gap in seq
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rules (slug, class_name, conditions, property, abbreviation, value, run_id)
			SELECT ?, ?, ?, ?, ?, ?, ?
			WHERE NOT EXISTS (SELECT 1 FROM rules WHERE slug = ?)
		`, rule.Slug, rule.ClassName, conditions, rule.Decl.Property, rule.Decl.Abbreviation, rule.Decl.Value, c.RunID, rule.Slug)
		if err != nil {
			return fmt.Errorf("write rule %q: %w", rule.Slug, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO compilation_rules (compilation_id, position, slug)
			VALUES (?, ?, ?)
		`, c.ID, i, rule.Slug)
		if err != nil {
			return fmt.Errorf("link rule %q: %w", rule.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write compilation %s: commit: %w", c.ID, err)
	}
	return nil
}

// marshalConditions stores the condition path as a JSON array, never null.
func marshalConditions(conditions []string) (string, error) {
	if conditions == nil {
		conditions = []string{}
	}
	data, err := json.Marshal(conditions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalConditions(data string) ([]string, error) {
	var conditions []string
	if err := json.Unmarshal([]byte(data), &conditions); err != nil {
		return nil, err
	}
	if len(conditions) == 0 {
		return nil, nil
	}
	return conditions, nil
}
