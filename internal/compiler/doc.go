// Package compiler turns style documents into ordered ir partials and
// lints canonical trees against a preset.
//
// Sources:
//   - CUE via the CUE SDK's Go API (CompileStyle)
//   - YAML via yaml.v3 nodes, which keep mapping order (FromYAML)
//   - JSON via the ordered ir decoder
//
// Decoding errors are *CompileError. Lint never fails; it returns
// ValidationError findings for input the engine resolves silently.
package compiler
