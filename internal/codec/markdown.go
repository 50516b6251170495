package codec

import (
	"bufio"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

// decodeMarkdown reads nested bullet lists whose items start with a link,
// "[label](url)"; a nested list under an item becomes its children. Blocks
// other than lists (titles, prose) are ignored.
func decodeMarkdown(data []byte) (*menu.Node, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))
	root := &menu.Node{}
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		list, ok := c.(*gmast.List)
		if !ok {
			continue
		}
		items, err := markdownItems(list, data)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, items...)
	}
	if len(root.Children) == 0 {
		return nil, errors.ParseError("no link list found in Markdown").Build()
	}
	return root, nil
}

func markdownItems(list *gmast.List, source []byte) ([]*menu.Node, error) {
	var out []*menu.Node
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		n := &menu.Node{}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch block := c.(type) {
			case *gmast.List:
				kids, err := markdownItems(block, source)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, kids...)
			default:
				if n.URL != "" {
					continue
				}
				link, ok := block.FirstChild().(*gmast.Link)
				if !ok {
					return nil, errors.ParseError("list item does not start with a link").
						WithContext("line", lineOf(block, source)).Build()
				}
				n.Text = inlineText(link, source)
				n.URL = string(link.Destination)
			}
		}
		if n.URL == "" && n.Text == "" {
			return nil, errors.ParseError("empty list item").WithContext("line", lineOf(item, source)).Build()
		}
		out = append(out, n)
	}
	return out, nil
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(util.UnescapePunctuations(t.Segment.Value(source)))
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

func lineOf(n gmast.Node, source []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return strings.Count(string(source[:lines.At(0).Start]), "\n") + 1
}

func encodeMarkdown(w io.Writer, root *menu.Node) error {
	bw := bufio.NewWriter(w)
	var write func(nodes []*menu.Node, depth int)
	write = func(nodes []*menu.Node, depth int) {
		for _, n := range nodes {
			bw.WriteString(strings.Repeat("  ", depth))
			bw.WriteString("- [")
			bw.WriteString(escapeMarkdown(n.Text))
			bw.WriteString("](")
			bw.WriteString(markdownDestination(n.URL))
			bw.WriteString(")\n")
			write(n.Children, depth+1)
		}
	}
	write(root.Children, 0)
	return bw.Flush()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`, `!`, `\!`,
)

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

func markdownDestination(u string) string {
	if strings.ContainsAny(u, " ()<>") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(u) + ">"
	}
	return u
}
