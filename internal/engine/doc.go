// Package engine implements the style pipeline.
//
// Data flows leaf to root:
//
//	MergeAll  partial trees   -> canonical tree   (Raw)
//	Expand    canonical tree  -> []ir.Decl        (Explain)
//	Emit      []ir.Decl       -> class names      (Compile)
//
// ORDERING:
// Declarations come out in source key order. Recursion into condition
// scopes, object-form values and responsive arrays inserts contiguously
// at the visiting key. Emit neither sorts nor deduplicates.
//
// TOTALITY:
// No stage returns an error. Unknown properties pass through literally,
// unknown condition keys become bracketed arbitrary conditions, and
// ambiguous input is resolved by last-declared-wins and positional skip.
// Dropped input is reported at debug level on the engine's logger.
package engine
