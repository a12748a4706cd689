// Package ir provides the value model shared by every stylec package.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Objects are insertion ordered; "last declared wins" rules replay key order
//   - Numbers keep their literal text, nothing is float formatted
//   - Values are sealed: Null, String, Bool, Number, Array, *Object
//   - Hashes are domain separated SHA-256 over deterministic encodings
package ir
