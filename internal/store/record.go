package store

import (
	"fmt"

	"github.com/roach88/stylec/internal/engine"
	"github.com/roach88/stylec/internal/ir"
)

// NewCompilation builds the record of one compile. tree is the merged
// tree and decls its expansion under opts; the compilation id is derived
// from both the tree and presetDigest.
func NewCompilation(runID, presetDigest string, tree *ir.Object, decls []ir.Decl, opts engine.EmitOptions) (Compilation, error) {
	id, err := ir.CompilationID(tree, presetDigest)
	if err != nil {
		return Compilation{}, fmt.Errorf("compilation id: %w", err)
	}
	rules := make([]Rule, len(decls))
	for i, d := range decls {
		rules[i] = Rule{
			Slug:      engine.Slug(d, opts.Separator),
			ClassName: opts.ClassName(d),
			Decl:      d,
			RunID:     runID,
		}
	}
	return Compilation{
		ID:           id,
		RunID:        runID,
		PresetDigest: presetDigest,
		Tree:         tree,
		ClassName:    engine.Emit(decls, opts),
		Rules:        rules,
	}, nil
}

// NewRun labels a run with the current tool and slug format versions.
func NewRun(id, presetDigest string) Run {
	return Run{
		ID:           id,
		PresetDigest: presetDigest,
		ToolVersion:  ir.ToolVersion,
		SlugFormat:   ir.SlugFormatVersion,
	}
}
