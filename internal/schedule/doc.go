// Package schedule implements schedule-late placement: deciding, for
// every floating Expr in a cps.Fn's sea-of-nodes body, which Block it
// belongs to.
//
// An Expr floats free of any Block until scheduled — its only fixed
// constraint is that it must be placed somewhere that dominates every
// Block that uses it, so it's computed before all its uses and at most
// once per path that reaches them. Schedule-late places each Expr as
// late as that constraint allows: at the dominator-tree least common
// ancestor of every Block using it, which is the block closest to its
// uses (as opposed to schedule-early, which would hoist everything to
// the entry block).
package schedule
