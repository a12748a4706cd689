package ir

import "strings"

// Decl is one atomic style declaration: a single property/value pair
// under an ordered path of condition prefixes.
type Decl struct {
	// Conditions holds rendered condition prefixes, outermost first.
	// Base scope contributes no entry.
	Conditions []string `json:"conditions,omitempty"`

	// Property is the canonical property name.
	Property string `json:"property"`

	// Abbreviation is the property's short code used in slugs.
	Abbreviation string `json:"abbreviation"`

	// Value is the rendered scalar, unescaped.
	Value string `json:"value"`
}

// String renders the declaration for diagnostics, e.g. "hover:dark backgroundColor=red".
func (d Decl) String() string {
	var b strings.Builder
	if len(d.Conditions) > 0 {
		b.WriteString(strings.Join(d.Conditions, ":"))
		b.WriteByte(' ')
	}
	b.WriteString(d.Property)
	b.WriteByte('=')
	b.WriteString(d.Value)
	return b.String()
}
