package menu

import (
	"iter"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ErrInvalidStructure is reported when a tree is not a tree: a node is its
// own ancestor or a child slot is nil.
var ErrInvalidStructure = errors.StructureError("invalid structure").Build()

// Entry is one node as seen during a walk.
type Entry struct {
	Label string
	URL   string
	// Depth is 0 for the root's children.
	Depth int
	// Path holds the labels from the top-level entry down to this one.
	Path []string
	// Index is the position among the parent's children.
	Index int
	Node  *Node

	pointer string
}

// Pointer returns the JSON pointer of the entry relative to the root,
// e.g. "/children/1/children/0".
func (e Entry) Pointer() string { return e.pointer }

// Walk returns a lazy depth-first, pre-order sequence over every node below
// root. Siblings are yielded in declaration order. A cycle or nil child
// yields a single ErrInvalidStructure error and ends the sequence.
func Walk(root *Node) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		if root == nil {
			return
		}
		onPath := map[*Node]bool{root: true}

		var visit func(n *Node, depth int, path []string, ptr string) bool
		visit = func(n *Node, depth int, path []string, ptr string) bool {
			for i, child := range n.Children {
				childPtr := ptr + "/children/" + strconv.Itoa(i)
				if child == nil {
					yield(Entry{}, ErrInvalidStructure.
						WithContext("pointer", childPtr).
						WithContext("reason", "nil child"))
					return false
				}
				if onPath[child] {
					yield(Entry{}, ErrInvalidStructure.
						WithContext("pointer", childPtr).
						WithContext("reason", "cycle at "+strings.Join(path, " > ")))
					return false
				}
				childPath := append(path[:len(path):len(path)], child.Text)
				entry := Entry{
					Label:   child.Text,
					URL:     child.URL,
					Depth:   depth,
					Path:    childPath,
					Index:   i,
					Node:    child,
					pointer: childPtr,
				}
				if !yield(entry, nil) {
					return false
				}
				if len(child.Children) == 0 {
					continue
				}
				onPath[child] = true
				ok := visit(child, depth+1, childPath, childPtr)
				delete(onPath, child)
				if !ok {
					return false
				}
			}
			return true
		}
		visit(root, 0, nil, "")
	}
}

// Flatten collects Walk into a slice.
func Flatten(root *Node) ([]Entry, error) {
	var out []Entry
	for e, err := range Walk(root) {
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
