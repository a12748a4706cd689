package engine

import "github.com/roach88/stylec/internal/ir"

// MergeAll deep-merges partial style trees into one canonical tree.
//
// Each argument is a tree or an ir.Array of trees; arrays are flattened in
// order before folding left to right. Null and non-object members are
// skipped. Inputs are never modified.
func MergeAll(partials ...ir.Value) *ir.Object {
	acc := ir.NewObject()
	for _, tree := range flatten(partials, nil) {
		Merge(acc, tree)
	}
	return acc
}

// Merge folds next into acc. For every key of next, in order: when both
// sides hold objects they merge recursively, otherwise next's value
// replaces acc's wholesale. Replaced keys keep their original position.
// Values copied from next are deep copies, so acc never aliases next.
func Merge(acc, next *ir.Object) {
	for key, val := range next.All() {
		if incoming, ok := val.(*ir.Object); ok {
			if existing, ok := acc.Get(key); ok {
				if existingObj, ok := existing.(*ir.Object); ok {
					Merge(existingObj, incoming)
					continue
				}
			}
		}
		acc.Set(key, ir.Clone(val))
	}
}

func flatten(values []ir.Value, out []*ir.Object) []*ir.Object {
	for _, v := range values {
		switch val := v.(type) {
		case *ir.Object:
			out = append(out, val)
		case ir.Array:
			out = flatten(val, out)
		}
	}
	return out
}
