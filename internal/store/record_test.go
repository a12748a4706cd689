package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stylec/internal/engine"
	"github.com/roach88/stylec/internal/ir"
)

func TestNewCompilation(t *testing.T) {
	tree := ir.NewObject(ir.P("display", ir.String("flex")), ir.P("_hover", ir.NewObject(ir.P("color", ir.String("red")))))
	decls := []ir.Decl{dFlex, hoverRed}

	c, err := NewCompilation("run-1", "digest-1", tree, decls, engine.EmitOptions{Separator: "_"})
	require.NoError(t, err)

	wantID, err := ir.CompilationID(tree, "digest-1")
	require.NoError(t, err)
	assert.Equal(t, wantID, c.ID)
	assert.Equal(t, "d_flex hover:c_red", c.ClassName)
	require.Len(t, c.Rules, 2)
	assert.Equal(t, "hover:c_red", c.Rules[1].Slug)
	assert.Equal(t, "hover:c_red", c.Rules[1].ClassName)
	assert.Equal(t, "run-1", c.Rules[1].RunID)
}

func TestNewCompilation_HashedClassNames(t *testing.T) {
	tree := ir.NewObject(ir.P("display", ir.String("flex")))

	c, err := NewCompilation("run-1", "digest-1", tree, []ir.Decl{dFlex}, engine.EmitOptions{Hash: true})
	require.NoError(t, err)

	require.Len(t, c.Rules, 1)
	assert.Equal(t, "d_flex", c.Rules[0].Slug)
	assert.Equal(t, ir.ClassHash("d_flex"), c.Rules[0].ClassName)
	assert.Equal(t, ir.ClassHash("d_flex"), c.ClassName)
}

func TestNewCompilation_WritesAndReadsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("run-1", "digest-1")
	require.NoError(t, s.WriteRun(ctx, run))

	tree := ir.NewObject(ir.P("display", ir.String("grid")))
	c, err := NewCompilation(run.ID, run.PresetDigest, tree, []ir.Decl{smGrid}, engine.EmitOptions{})
	require.NoError(t, err)
	require.NoError(t, s.WriteCompilation(ctx, c))

	got, err := s.ReadCompilation(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "sm:d_grid", got.ClassName)
	require.Len(t, got.Rules, 1)
	assert.Equal(t, smGrid, got.Rules[0].Decl)

	gotRun, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, ir.ToolVersion, gotRun.ToolVersion)
	assert.Equal(t, []string{c.ID}, gotRun.CompilationIDs)
}
