// Package doms builds a dominator tree over a cps.Fn's control-flow
// graph using the Cooper-Harvey-Kennedy iterative algorithm: postorder
// numbering, a reverse-postorder fixpoint loop, and a two-finger
// intersect to find each block's immediate dominator.
//
// internal/schedule uses the resulting Tree to compute least common
// ancestors for schedule-late placement, and internal/target walks it
// in preorder to declare blocks in an order where every block is
// declared after its dominator.
package doms
