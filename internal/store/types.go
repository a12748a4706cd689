package store

import (
	"errors"

	"github.com/roach88/stylec/internal/ir"
)

// ErrNotFound is returned by single-record reads that match nothing.
var ErrNotFound = errors.New("store: not found")

// Run labels one batch of writes, typically one CLI invocation.
type Run struct {
	Seq          int64  `json:"seq"`
	ID           string `json:"id"`
	PresetDigest string `json:"preset_digest"`
	ToolVersion  string `json:"tool_version"`
	SlugFormat   string `json:"slug_format"`

	// CompilationIDs lists the compilations written under the run, in
	// write order. Filled by ReadRun only.
	CompilationIDs []string `json:"compilation_ids,omitempty"`
}

// Rule is one atomic declaration registered under its slug.
type Rule struct {
	Seq       int64   `json:"seq"`
	Slug      string  `json:"slug"`
	ClassName string  `json:"class_name"` // slug, or its hash in hashed mode
	Decl      ir.Decl `json:"decl"`
	RunID     string  `json:"run_id"`
}

// Compilation is a recorded Compile call.
type Compilation struct {
	Seq          int64      `json:"seq"`
	ID           string     `json:"id"` // ir.CompilationID(Tree, PresetDigest)
	RunID        string     `json:"run_id"`
	PresetDigest string     `json:"preset_digest"`
	Tree         *ir.Object `json:"tree"`
	ClassName    string     `json:"class_name"`

	// Rules in class name order, duplicates included. Seq and RunID are
	// filled on read with the owning (first) writer's values.
	Rules []Rule `json:"rules"`
}
