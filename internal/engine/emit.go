package engine

import (
	"strings"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

// DefaultSeparator joins abbreviation and value when EmitOptions leaves
// Separator empty.
const DefaultSeparator = "_"

// EmitOptions controls slug rendering.
type EmitOptions struct {
	Separator string
	Hash      bool // replace each slug by ir.ClassHash
}

// Emit renders declarations as a space-separated class name string.
// Order is preserved; duplicates are kept.
func Emit(decls []ir.Decl, opts EmitOptions) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(opts.ClassName(d))
	}
	return b.String()
}

// Classes renders each declaration as its own class name.
func Classes(decls []ir.Decl, opts EmitOptions) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = opts.ClassName(d)
	}
	return out
}

// Slug renders one declaration as
// "prefix1:prefix2:abbreviation<sep>value" with whitespace in the value
// replaced by underscores.
func Slug(d ir.Decl, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	var b strings.Builder
	for _, prefix := range d.Conditions {
		b.WriteString(prefix)
		b.WriteByte(':')
	}
	b.WriteString(d.Abbreviation)
	b.WriteString(sep)
	b.WriteString(config.EscapeWhitespace(d.Value))
	return b.String()
}

// ClassName renders one declaration as its slug, or the slug hash in
// hashed mode.
func (o EmitOptions) ClassName(d ir.Decl) string {
	slug := Slug(d, o.Separator)
	if o.Hash {
		return ir.ClassHash(slug)
	}
	return slug
}
