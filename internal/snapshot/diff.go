package snapshot

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/menu"
)

// ChangeKind classifies one difference between two trees.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
	Changed ChangeKind = "changed"
)

// Change is one entry that differs between two trees, keyed by its label
// path. Repeated sibling labels are disambiguated with an occurrence suffix
// such as "Files[2]". Backslash, "/" and "[" inside a label are escaped with
// a backslash, so "I/O" keys as `I\/O` and never collides with a nested "O".
type Change struct {
	Kind   ChangeKind `json:"kind"`
	Key    string     `json:"key"`
	OldURL string     `json:"old_url,omitempty"`
	NewURL string     `json:"new_url,omitempty"`
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s [%s]", c.Key, c.NewURL)
	case Removed:
		return fmt.Sprintf("- %s [%s]", c.Key, c.OldURL)
	default:
		return fmt.Sprintf("~ %s [%s -> %s]", c.Key, c.OldURL, c.NewURL)
	}
}

// Diff compares two trees. Removed and changed entries follow the order of
// a, added entries the order of b and come last.
func Diff(a, b *menu.Node) ([]Change, error) {
	before, beforeKeys, err := index(a)
	if err != nil {
		return nil, err
	}
	after, afterKeys, err := index(b)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, key := range beforeKeys {
		oldURL := before[key]
		newURL, ok := after[key]
		switch {
		case !ok:
			changes = append(changes, Change{Kind: Removed, Key: key, OldURL: oldURL})
		case oldURL != newURL:
			changes = append(changes, Change{Kind: Changed, Key: key, OldURL: oldURL, NewURL: newURL})
		}
	}
	for _, key := range afterKeys {
		if _, ok := before[key]; !ok {
			changes = append(changes, Change{Kind: Added, Key: key, NewURL: after[key]})
		}
	}
	return changes, nil
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, `/`, `\/`, `[`, `\[`)

func index(root *menu.Node) (map[string]string, []string, error) {
	urls := map[string]string{}
	var keys []string
	// parent key -> label -> occurrences so far
	seen := map[string]map[string]int{}
	// key of the most recent entry at each depth
	var stack []string

	for e, err := range menu.Walk(root) {
		if err != nil {
			return nil, nil, err
		}
		stack = stack[:e.Depth]
		parent := strings.Join(stack, "/")
		if seen[parent] == nil {
			seen[parent] = map[string]int{}
		}
		seen[parent][e.Label]++
		segment := keyEscaper.Replace(e.Label)
		if n := seen[parent][e.Label]; n > 1 {
			segment = fmt.Sprintf("%s[%d]", segment, n)
		}
		stack = append(stack, segment)
		key := strings.Join(stack, "/")
		urls[key] = e.URL
		keys = append(keys, key)
	}
	return urls, keys, nil
}
