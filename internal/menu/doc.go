// Package menu models a documentation site's navigation tree.
//
// A tree is a root *Node whose Children are the top-level menu entries. The
// root carries no label or link of its own; every other node has a display
// label (Text) and a target (URL), and nodes that expand into a submenu list
// their entries in Children, in display order.
//
// Trees are treated as immutable once loaded. Walk yields the entries in
// depth-first, declaration order; Validate reports every structural problem
// at once as a *LoadError.
package menu
