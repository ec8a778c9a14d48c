// Package fast implements F-AST, the typed, fully-elaborated AST the
// checker produces from surface syntax. Every Expr carries a resolved
// types.Type; there are no unification variables left by the time a
// program reaches F-AST.
//
// The C++ ancestor of this package used a virtual Expr hierarchy
// allocated out of a bump arena, with each concrete node overriding
// print/to_cps. Go has no arena allocator worth fighting the garbage
// collector for, and no need for virtual dispatch: every Expr variant
// here is a plain struct satisfying a small Expr interface, and the
// to_cps translation the C++ put on each node as a method instead
// lives as a type switch in internal/tocps.
package fast
