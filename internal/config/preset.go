package config

import (
	_ "embed"
	"sort"

	"github.com/roach88/stylec/internal/ir"
)

//go:embed preset.yaml
var defaultPresetYAML []byte

// ExtendsDefault is the only supported value of Preset.Extends.
const ExtendsDefault = "default"

type (
	// PropertySpec declares one canonical property of the alias table.
	PropertySpec struct {
		Name         string   `mapstructure:"name" yaml:"name"`
		Abbreviation string   `mapstructure:"abbreviation" yaml:"abbreviation"`
		Aliases      []string `mapstructure:"aliases" yaml:"aliases,omitempty,flow"`
	}

	// Preset is the injected configuration of the pipeline: alias table,
	// pseudo conditions, breakpoint registry and slug options.
	Preset struct {
		// Extends names a preset this one overlays. Only "default" is known.
		Extends string `mapstructure:"extends" yaml:"extends,omitempty"`

		// Separator joins abbreviation and value in a slug.
		Separator string `mapstructure:"separator" yaml:"separator"`

		// Hash replaces every slug with its short hash.
		Hash bool `mapstructure:"hash" yaml:"hash"`

		// Breakpoints in ascending order. Responsive array position i maps
		// to Breakpoints[i-1]; position 0 is the base scope.
		Breakpoints []string `mapstructure:"breakpoints" yaml:"breakpoints,flow"`

		// Conditions maps pseudo condition keys to rendered prefixes.
		Conditions map[string]string `mapstructure:"conditions" yaml:"conditions"`

		// Properties is the alias table.
		Properties []PropertySpec `mapstructure:"properties" yaml:"properties"`
	}
)

// Default returns a fresh copy of the embedded default preset.
func Default() *Preset {
	p, err := Parse(defaultPresetYAML, FormatYAML)
	if err != nil {
		// embedded preset is covered by tests
		panic("config: embedded preset is invalid: " + err.Error())
	}
	return p
}

// overlay applies p on top of base: scalars replace when set, conditions
// merge key by key, properties with the same name replace in place and new
// ones are appended, breakpoints replace when non-empty.
func (p *Preset) overlay(base *Preset) *Preset {
	out := *base
	out.Extends = ""
	if p.Separator != "" {
		out.Separator = p.Separator
	}
	out.Hash = base.Hash || p.Hash
	if len(p.Breakpoints) > 0 {
		out.Breakpoints = append([]string(nil), p.Breakpoints...)
	}

	out.Conditions = make(map[string]string, len(base.Conditions)+len(p.Conditions))
	for k, v := range base.Conditions {
		out.Conditions[k] = v
	}
	for k, v := range p.Conditions {
		out.Conditions[k] = v
	}

	out.Properties = append([]PropertySpec(nil), base.Properties...)
	index := make(map[string]int, len(out.Properties))
	for i, prop := range out.Properties {
		index[prop.Name] = i
	}
	for _, prop := range p.Properties {
		if i, ok := index[prop.Name]; ok {
			out.Properties[i] = prop
			continue
		}
		index[prop.Name] = len(out.Properties)
		out.Properties = append(out.Properties, prop)
	}
	return &out
}

// Value returns the preset as an ir value, used for its digest.
func (p *Preset) Value() ir.Value {
	bps := make(ir.Array, len(p.Breakpoints))
	for i, bp := range p.Breakpoints {
		bps[i] = ir.String(bp)
	}

	keys := make([]string, 0, len(p.Conditions))
	for k := range p.Conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	conds := ir.NewObject()
	for _, k := range keys {
		conds.Set(k, ir.String(p.Conditions[k]))
	}

	props := make(ir.Array, len(p.Properties))
	for i, prop := range p.Properties {
		aliases := make(ir.Array, len(prop.Aliases))
		for j, a := range prop.Aliases {
			aliases[j] = ir.String(a)
		}
		props[i] = ir.NewObject(
			ir.P("name", ir.String(prop.Name)),
			ir.P("abbreviation", ir.String(prop.Abbreviation)),
			ir.P("aliases", aliases),
		)
	}

	return ir.NewObject(
		ir.P("separator", ir.String(p.Separator)),
		ir.P("hash", ir.Bool(p.Hash)),
		ir.P("breakpoints", bps),
		ir.P("conditions", conds),
		ir.P("properties", props),
	)
}
