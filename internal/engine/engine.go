package engine

import (
	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
)

// Engine runs the style pipeline against one set of preset tables.
//
// Thread-safety model:
//   - Tables are immutable after config.NewTables
//   - every call builds its own trees and declaration lists
//
// so one Engine may serve any number of goroutines.
type Engine struct {
	tables *config.Tables
	log    *zap.Logger
	hash   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for expansion diagnostics.
// Diagnostics are logged at debug level only; the pipeline never fails.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithHash overrides the preset's hash flag.
func WithHash(hash bool) Option {
	return func(e *Engine) {
		e.hash = hash
	}
}

// New creates an Engine for the given tables.
func New(tables *config.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		log:    zap.NewNop(),
		hash:   tables.Hash(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables returns the tables the engine was built with.
func (e *Engine) Tables() *config.Tables {
	return e.tables
}

// Compile merges the partials, expands the result and returns the class
// name string.
func (e *Engine) Compile(partials ...ir.Value) string {
	return Emit(e.Explain(partials...), e.EmitOptions())
}

// Raw merges the partials into a canonical tree without expanding it.
func (e *Engine) Raw(partials ...ir.Value) *ir.Object {
	return MergeAll(partials...)
}

// Explain merges and expands the partials, returning the declarations
// Compile would render.
func (e *Engine) Explain(partials ...ir.Value) []ir.Decl {
	return e.Expand(MergeAll(partials...))
}

// EmitOptions returns the slug options derived from the preset and the
// engine's options.
func (e *Engine) EmitOptions() EmitOptions {
	return EmitOptions{
		Separator: e.tables.Separator(),
		Hash:      e.hash,
	}
}
