package compiler

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"go.uber.org/multierr"
)

// CompileError reports a style document that cannot be turned into a tree.
// Pos is set for CUE sources, Line for YAML sources.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
	Line    int
}

func (e *CompileError) Error() string {
	switch {
	case e.Pos.IsValid():
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
}

// cueError converts every error CUE reports into a *CompileError carrying
// the field path and first position, combined with multierr. Errors CUE
// cannot split are returned unchanged.
func cueError(err error) error {
	if err == nil {
		return nil
	}
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return err
	}

	var out error
	for _, e := range list {
		ce := &CompileError{Field: "cue", Message: e.Error()}
		if path := e.Path(); len(path) > 0 {
			ce.Field = strings.Join(path, ".")
		}
		if pos := cueerrors.Positions(e); len(pos) > 0 {
			ce.Pos = pos[0]
		}
		out = multierr.Append(out, ce)
	}
	return out
}
