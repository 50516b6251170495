package menu

import (
	"golang.org/x/text/cases"
)

// Find follows a path of labels from the root, matching each level
// case-insensitively against the first child with that label.
func Find(root *Node, labels ...string) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	fold := cases.Fold()
	cur := root
	for _, label := range labels {
		want := fold.String(label)
		var next *Node
		for _, c := range cur.Children {
			if c != nil && fold.String(c.Text) == want {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Lookup returns every entry whose URL equals target, in walk order. A
// target without fragment also matches entries that point at an anchor on
// that page.
func Lookup(root *Node, target string) ([]Entry, error) {
	want := SplitURL(target)
	var out []Entry
	for e, err := range Walk(root) {
		if err != nil {
			return out, err
		}
		got := SplitURL(e.URL)
		if got.Page != want.Page {
			continue
		}
		if want.HasFragment() && got.Fragment != want.Fragment {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Stats summarises a tree.
type Stats struct {
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
	MaxDepth int `json:"max_depth"`
	Pages    int `json:"pages"`
	Anchors  int `json:"anchors"`
}

// Summarize walks the tree once and counts nodes, leaves, distinct pages and
// anchor links. MaxDepth is 1 for a tree with only top-level entries.
func Summarize(root *Node) (Stats, error) {
	var s Stats
	pages := map[string]struct{}{}
	for e, err := range Walk(root) {
		if err != nil {
			return s, err
		}
		s.Nodes++
		if e.Node.IsLeaf() {
			s.Leaves++
		}
		if e.Depth+1 > s.MaxDepth {
			s.MaxDepth = e.Depth + 1
		}
		t := SplitURL(e.URL)
		pages[t.Page] = struct{}{}
		if t.HasFragment() {
			s.Anchors++
		}
	}
	s.Pages = len(pages)
	return s, nil
}
