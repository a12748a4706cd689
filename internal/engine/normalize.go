package engine

import "github.com/roach88/stylec/internal/ir"

// Normalize rewrites alias keys to their canonical property names.
//
// Collisions fold the same way Expand folds them: the first key's
// position, the last key's value. Condition scopes, bracketed or not, are
// normalized recursively; property values (object-form included, and
// those of unknown properties) are copied as they are. The input is not
// modified.
func (e *Engine) Normalize(tree *ir.Object) *ir.Object {
	x := &expansion{tables: e.tables, log: e.log}
	return x.normalize(tree)
}

func (x *expansion) normalize(tree *ir.Object) *ir.Object {
	out := ir.NewObject()
	for _, n := range x.nodes(tree) {
		switch n.kind {
		case conditionNode:
			if scope, ok := n.value.(*ir.Object); ok {
				out.Set(n.key, x.normalize(scope))
				continue
			}
			out.Set(n.key, ir.Clone(n.value))
		case propertyNode:
			out.Set(n.prop.Name, ir.Clone(n.value))
		}
	}
	return out
}
