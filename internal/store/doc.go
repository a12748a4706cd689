// Package store provides the SQLite registry of compiled class names.
//
// A stylesheet writer outside this module reads the registry to emit one
// CSS rule per atomic declaration. The registry records:
//   - Runs: one per CLI invocation that writes, labelled by a run token
//   - Compilations: canonical tree, preset digest and class name
//   - Rules: one row per distinct slug, owned by its first writer
//
// # Ordering
//
// Every table carries a seq INTEGER. Queries order by seq, then by id or
// slug with BINARY collation, so reads are identical across machines.
//
// # Idempotency
//
// Compilation ids are content addressed (ir.CompilationID over the tree in
// key order and the preset digest). Writing the same compilation twice is a
// no-op, and a slug already registered keeps its first sequence number.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
