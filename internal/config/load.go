package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/mitchellh/mapstructure"
	yaml "gopkg.in/yaml.v3"
)

// Format identifies a preset or style document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q (want .yaml, .yml, .json or .cue)", filepath.Ext(path))
	}
}

// Load reads a preset file. The format follows the file extension.
func Load(path string) (*Preset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &ConfigError{Code: ErrLoadFailed, Field: path, Message: err.Error()}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Code: ErrLoadFailed, Field: path, Message: err.Error()}
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, &ConfigError{Code: ErrLoadFailed, Field: path, Message: err.Error()}
	}
	return p, nil
}

// Parse decodes a preset document. Unknown fields are rejected.
// A preset with `extends: default` is overlaid on the embedded preset.
func Parse(data []byte, format Format) (*Preset, error) {
	raw, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}

	p := &Preset{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      p,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode preset: %w", err)
	}

	switch p.Extends {
	case "":
	case ExtendsDefault:
		p = p.overlay(Default())
	default:
		return nil, fmt.Errorf("unknown preset %q in extends (only %q is available)", p.Extends, ExtendsDefault)
	}

	if p.Separator == "" {
		p.Separator = "_"
	}
	return p, nil
}

// decodeDocument turns a document into generic Go values for mapstructure.
func decodeDocument(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatCUE:
		v := cuecontext.New().CompileBytes(data)
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("failed to compile CUE: %w", err)
		}
		if hidden := hiddenFields(v, ""); len(hidden) > 0 {
			return nil, fmt.Errorf("hidden CUE fields %s would be dropped; quote condition keys (\"_hover\": \"hover\")", strings.Join(hidden, ", "))
		}
		if err := v.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode CUE: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return raw, nil
}

// hiddenFields lists the paths of hidden fields under v. Unquoted
// underscore labels are hidden in CUE and never reach Decode.
func hiddenFields(v cue.Value, path string) []string {
	var out []string
	switch v.IncompleteKind() {
	case cue.StructKind:
		iter, err := v.Fields(cue.Hidden(true))
		if err != nil {
			return nil
		}
		for iter.Next() {
			sel := iter.Selector()
			field := sel.String()
			if path != "" {
				field = path + "." + field
			}
			if sel.LabelType() == cue.HiddenLabel {
				out = append(out, field)
				continue
			}
			out = append(out, hiddenFields(iter.Value(), field)...)
		}
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil
		}
		for i := 0; iter.Next(); i++ {
			out = append(out, hiddenFields(iter.Value(), fmt.Sprintf("%s[%d]", path, i))...)
		}
	}
	return out
}
