// Package queryir is the query representation for reading the rule
// registry.
//
// Callers describe which rules they want with a Select and its
// predicates; backends compile the query for their storage. The SQLite
// backend lives in package querysql.
//
//	[rules --property ...] → [queryir.Select] → [querysql] → SQL + params
//
// # Sealed interfaces
//
// Query and Predicate are sealed with marker methods, so backends can
// switch over every node type:
//
//	switch p := pred.(type) {
//	case Equals:
//	case HasCondition:
//	case Unconditioned:
//	case And:
//	}
//
// Both value and pointer forms of each node are accepted.
//
// # Values
//
// Equals compares a rule field with an ir scalar. Strings, numbers and
// booleans compare by their rendered text, the form stored in the
// registry; null, arrays and objects are rejected by Validate.
package queryir
