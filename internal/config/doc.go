// Package config loads and validates presets: the alias table, the
// pseudo condition table and the breakpoint registry consumed by the
// engine.
//
// A Preset is plain data decoded from YAML, JSON or CUE. NewTables turns
// it into immutable lookup Tables and is the only place configuration
// errors are raised; the engine itself never fails.
package config
