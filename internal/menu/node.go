package menu

import (
	"net/url"
	"strings"
)

// Node is one entry in the navigation tree.
type Node struct {
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	URL      string  `json:"url,omitempty" yaml:"url,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Target is a node URL split into page and in-page anchor.
type Target struct {
	Page     string
	Fragment string
}

// String reassembles the original URL.
func (t Target) String() string {
	if t.Fragment == "" {
		return t.Page
	}
	return t.Page + "#" + t.Fragment
}

// HasFragment reports whether the target points at an anchor.
func (t Target) HasFragment() bool { return t.Fragment != "" }

// IsExternal reports whether the page carries a scheme or host, i.e. it
// leaves the documentation site.
func (t Target) IsExternal() bool {
	u, err := url.Parse(t.Page)
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Host != ""
}

// SplitURL separates a menu URL into page and fragment. The fragment is
// returned as written (Doxygen anchors such as "index__7E" are not unescaped).
func SplitURL(raw string) Target {
	page, fragment, _ := strings.Cut(raw, "#")
	return Target{Page: page, Fragment: fragment}
}

// Target returns the node URL split into page and fragment.
func (n *Node) Target() Target { return SplitURL(n.URL) }

// IsLeaf reports whether the node is directly navigable without a submenu.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Text: n.Text, URL: n.URL}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}

// Equal reports whether two trees have the same labels, URLs and child order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Text != b.Text || a.URL != b.URL || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
