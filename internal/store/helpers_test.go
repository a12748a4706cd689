package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/ir"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func writeTestRun(t *testing.T, s *Store, id string) Run {
	t.Helper()
	run := Run{ID: id, PresetDigest: "digest-1", ToolVersion: ir.ToolVersion, SlugFormat: ir.SlugFormatVersion}
	require.NoError(t, s.WriteRun(context.Background(), run))
	return run
}

func testRule(slug string, d ir.Decl) Rule {
	return Rule{Slug: slug, ClassName: slug, Decl: d}
}

// testCompilation builds a compilation by hand so store tests do not
// depend on the engine.
func testCompilation(t *testing.T, runID string, tree *ir.Object, rules ...Rule) Compilation {
	t.Helper()
	id, err := ir.CompilationID(tree, "digest-1")
	require.NoError(t, err)

	className := ""
	for i, r := range rules {
		if i > 0 {
			className += " "
		}
		className += r.ClassName
	}
	return Compilation{
		ID:           id,
		RunID:        runID,
		PresetDigest: "digest-1",
		Tree:         tree,
		ClassName:    className,
		Rules:        rules,
	}
}
