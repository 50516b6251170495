package menu

import (
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ErrLoad classifies every *LoadError so callers can route on it.
var ErrLoad = errors.StructureError("navigation tree failed validation").Build()

// Problem is one structural violation found by Validate.
type Problem struct {
	// Pointer is the JSON pointer of the offending node ("" for the root).
	Pointer string
	Label   string
	Message string
}

func (p Problem) String() string {
	loc := p.Pointer
	if loc == "" {
		loc = "/"
	}
	if p.Label != "" {
		return fmt.Sprintf("%s (%q): %s", loc, p.Label, p.Message)
	}
	return loc + ": " + p.Message
}

// LoadError aggregates all problems found while validating a tree.
type LoadError struct {
	Source   string
	Problems []Problem
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "%s: ", e.Source)
	}
	fmt.Fprintf(&b, "invalid navigation tree (%d problem", len(e.Problems))
	if len(e.Problems) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")")
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	return b.String()
}

// Unwrap exposes the classified sentinel.
func (e *LoadError) Unwrap() error { return ErrLoad }

// Validate checks that root is a well-formed tree: no nil entries, no node
// reachable twice, every non-root node has Text and URL, and every Children
// list that is present is non-empty. It returns nil or a *LoadError.
func Validate(root *Node) error {
	return ValidateSource("", root)
}

// ValidateSource is Validate with the source name recorded on the error.
func ValidateSource(source string, root *Node) error {
	if root == nil {
		return &LoadError{Source: source, Problems: []Problem{{Message: "tree is empty"}}}
	}
	v := &validator{seen: map[*Node]bool{}, onPath: map[*Node]bool{}}
	v.visit(root, "", true)
	if len(v.problems) == 0 {
		return nil
	}
	return &LoadError{Source: source, Problems: v.problems}
}

type validator struct {
	seen     map[*Node]bool
	onPath   map[*Node]bool
	problems []Problem
}

func (v *validator) add(ptr, label, msg string) {
	v.problems = append(v.problems, Problem{Pointer: ptr, Label: label, Message: msg})
}

func (v *validator) visit(n *Node, ptr string, isRoot bool) {
	v.seen[n] = true
	if !isRoot {
		if strings.TrimSpace(n.Text) == "" {
			v.add(ptr, "", "missing text")
		}
		if strings.TrimSpace(n.URL) == "" {
			v.add(ptr, n.Text, "missing url")
		}
	}
	if n.Children != nil && len(n.Children) == 0 {
		v.add(ptr, n.Text, "children present but empty")
	}

	v.onPath[n] = true
	defer delete(v.onPath, n)

	for i, c := range n.Children {
		cptr := ptr + "/children/" + strconv.Itoa(i)
		switch {
		case c == nil:
			v.add(cptr, "", "nil child")
		case v.onPath[c]:
			v.add(cptr, c.Text, "node is its own ancestor")
		case v.seen[c]:
			v.add(cptr, c.Text, "node appears more than once")
		default:
			v.visit(c, cptr, false)
		}
	}
}
