// Package types implements the compiler's ground type system: Bool,
// I64, function types, and union-find unification variables for
// Hindley-Milner inference. The checker unifies only ground,
// annotation-derived types and mints no Uvs.
//
// A Registry owns the two ground singletons and mints Uvs; Fn values
// are not deduplicated, since two structurally equal function types
// are not required to be the same Go value anywhere in this compiler.
package types
