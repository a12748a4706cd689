package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	yaml "gopkg.in/yaml.v3"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

// StylesField is the optional top-level CUE field holding the partials.
const StylesField = "styles"

// LoadFile reads a style document and returns its partials in order.
// The format follows the file extension (.yaml, .yml, .json, .cue).
func LoadFile(path string) ([]ir.Value, error) {
	format, err := config.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	partials, err := Parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return partials, nil
}

// Parse decodes a style document. A document holding a list yields its
// items as partials; any other document is a single partial. YAML streams
// contribute one partial per document, and a CUE document may wrap the
// partials in a top-level `styles` field. filename is used for CUE
// positions only.
func Parse(data []byte, format config.Format, filename string) ([]ir.Value, error) {
	switch format {
	case config.FormatJSON:
		v, err := ir.DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return partialsOf(v), nil

	case config.FormatYAML:
		var out []ir.Value
		dec := yaml.NewDecoder(bytes.NewReader(data))
		for {
			var doc yaml.Node
			err := dec.Decode(&doc)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to parse YAML: %w", err)
			}
			v, err := FromYAML(&doc)
			if err != nil {
				return nil, err
			}
			out = append(out, partialsOf(v)...)
		}
		return out, nil

	case config.FormatCUE:
		v := cuecontext.New().CompileBytes(data, cue.Filename(filename))
		if err := v.Err(); err != nil {
			return nil, cueError(err)
		}
		if styles := v.LookupPath(cue.ParsePath(StylesField)); styles.Exists() {
			v = styles
		}
		tree, err := CompileStyle(v)
		if err != nil {
			return nil, err
		}
		return partialsOf(tree), nil

	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ParseExpression decodes an inline JSON style tree as given on the
// command line.
func ParseExpression(expr string) ([]ir.Value, error) {
	return Parse([]byte(expr), config.FormatJSON, "")
}

func partialsOf(v ir.Value) []ir.Value {
	switch val := v.(type) {
	case ir.Array:
		return []ir.Value(val)
	case nil, ir.Null:
		return nil
	default:
		return []ir.Value{v}
	}
}
