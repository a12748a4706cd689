package compiler

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/roach88/stylec/internal/ir"
)

// FromYAML turns a decoded YAML node into a style value, keeping mapping
// order. Aliases are followed; merge keys are not expanded.
func FromYAML(node *yaml.Node) (ir.Value, error) {
	return fromYAML(node, "(root)")
}

func fromYAML(node *yaml.Node, field string) (ir.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return ir.Null{}, nil
		}
		return fromYAML(node.Content[0], field)

	case yaml.AliasNode:
		return fromYAML(node.Alias, field)

	case yaml.MappingNode:
		obj := ir.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, &CompileError{Field: field, Message: "mapping keys must be scalars", Line: keyNode.Line}
			}
			val, err := fromYAML(valNode, childField(field, keyNode.Value))
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make(ir.Array, 0, len(node.Content))
		for i, item := range node.Content {
			val, err := fromYAML(item, fmt.Sprintf("%s[%d]", field, i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil

	case yaml.ScalarNode:
		return yamlScalar(node, field)

	default:
		return nil, &CompileError{Field: field, Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind), Line: node.Line}
	}
}

func yamlScalar(node *yaml.Node, field string) (ir.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return ir.Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Line: node.Line}
		}
		return ir.Bool(b), nil
	case "!!int", "!!float":
		lit, err := numberLiteral(node.Value)
		if err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Line: node.Line}
		}
		return ir.Number(lit), nil
	default:
		return ir.String(node.Value), nil
	}
}

// numberLiteral keeps YAML number text that is already valid JSON and
// rewrites the YAML-only spellings (0x1F, 0o17, .5, +1) to decimal.
func numberLiteral(text string) (string, error) {
	if json.Valid([]byte(text)) {
		return text, nil
	}
	clean := strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("number %q has no JSON form", text)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// childField extends a diagnostic path: bare keys join with ".", keys with
// selector or whitespace characters are quoted in brackets.
func childField(parent, key string) string {
	if !isPlainKey(key) {
		if parent == "(root)" {
			return "[" + strconv.Quote(key) + "]"
		}
		return parent + "[" + strconv.Quote(key) + "]"
	}
	if parent == "(root)" {
		return key
	}
	return parent + "." + key
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r == '_' || r == '-':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
