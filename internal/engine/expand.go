package engine

import (
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

// Expand flattens a canonical tree into atomic declarations, in source
// key order. conditions is the prefix path the tree sits under, outermost
// first; it is empty for a top-level call.
//
// Keys are dispatched per scope:
//   - condition keys (base, pseudo, breakpoint) open a nested scope
//   - property keys (aliases included) emit declarations; array values
//     expand per breakpoint ordinal, object values are object-form
//     conditions rooted at the property
//   - any other key with selector or at-rule syntax and an object value is
//     a bracketed scope; every remaining key is a pass-through property,
//     object-form values included
//
// Two keys of one scope resolving to the same canonical property share the
// first key's position and carry the later key's value.
func (e *Engine) Expand(tree *ir.Object, conditions ...string) []ir.Decl {
	x := &expansion{tables: e.tables, log: e.log}
	x.scope(tree, slices.Clip(conditions))
	return x.out
}

type nodeKind int

const (
	conditionNode nodeKind = iota
	propertyNode
)

// node is one key of a scope after alias collisions are folded.
type node struct {
	kind  nodeKind
	key   string
	cond  config.Condition
	prop  config.Property
	value ir.Value
}

type expansion struct {
	tables *config.Tables
	log    *zap.Logger
	out    []ir.Decl
}

func (x *expansion) scope(tree *ir.Object, path []string) {
	for _, n := range x.nodes(tree) {
		switch n.kind {
		case conditionNode:
			scope, ok := n.value.(*ir.Object)
			if !ok {
				x.log.Debug("condition key without a nested scope",
					zap.String("key", n.key),
					zap.String("value", ir.KindOf(n.value)))
				continue
			}
			x.scope(scope, extend(path, n.cond.Prefix))
		case propertyNode:
			x.property(n.prop, n.value, path)
		}
	}
}

// nodes classifies the keys of one scope and folds alias collisions.
func (x *expansion) nodes(tree *ir.Object) []node {
	var nodes []node
	slot := make(map[string]int)

	for key, val := range tree.All() {
		if cond, ok := x.tables.Condition(key); ok {
			nodes = append(nodes, node{kind: conditionNode, key: key, cond: cond, value: val})
			continue
		}

		prop, known := x.tables.Property(key)
		if !known {
			if _, scoped := val.(*ir.Object); scoped && config.Classify(key).Verbatim() {
				nodes = append(nodes, node{kind: conditionNode, key: key, cond: x.tables.Arbitrary(key), value: val})
				continue
			}
		}

		if i, seen := slot[prop.Name]; seen {
			x.log.Debug("alias collision, last declared wins",
				zap.String("property", prop.Name),
				zap.String("discarded", nodes[i].key),
				zap.String("kept", key))
			nodes[i].key = key
			nodes[i].value = val
			continue
		}
		slot[prop.Name] = len(nodes)
		nodes = append(nodes, node{kind: propertyNode, key: key, prop: prop, value: val})
	}
	return nodes
}

// property emits the declarations of one property value under path.
func (x *expansion) property(prop config.Property, val ir.Value, path []string) {
	switch v := val.(type) {
	case nil, ir.Null:
		return
	case ir.Array:
		x.responsive(prop, v, path)
	case *ir.Object:
		// object-form: every key is a condition rooted at the property
		for key, sub := range v.All() {
			x.property(prop, sub, extend(path, x.tables.Resolve(key).Prefix))
		}
	default:
		text, ok := ir.Render(val)
		if !ok {
			return
		}
		x.out = append(x.out, ir.Decl{
			Conditions:   slices.Clone(path),
			Property:     prop.Name,
			Abbreviation: prop.Abbreviation,
			Value:        text,
		})
	}
}

// responsive expands the array shorthand. Position i maps to breakpoint
// ordinal i whatever the number of skipped positions before it.
func (x *expansion) responsive(prop config.Property, arr ir.Array, path []string) {
	for i, item := range arr {
		switch item.(type) {
		case nil, ir.Null:
			continue
		case ir.Array:
			x.log.Debug("nested array in responsive position dropped",
				zap.String("property", prop.Name),
				zap.Int("position", i))
			continue
		}

		scoped := path
		if i > 0 {
			bp, ok := x.tables.Breakpoint(i)
			if !ok {
				x.log.Debug("responsive position beyond breakpoint registry dropped",
					zap.String("property", prop.Name),
					zap.Int("position", i))
				continue
			}
			scoped = extend(path, bp.Prefix)
		}
		x.property(prop, item, scoped)
	}
}

// extend appends a prefix without sharing path's backing array.
// Empty prefixes (base) leave the path unchanged.
func extend(path []string, prefix string) []string {
	if prefix == "" {
		return path
	}
	return append(slices.Clip(path), prefix)
}
