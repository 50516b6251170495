// Package render turns a navigation tree into nested lists for display.
// Every renderer consumes menu.Walk, so output order is exactly the tree's
// declaration order and a malformed tree fails instead of looping.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

// Renderer writes a tree in one presentation.
type Renderer interface {
	Render(w io.Writer, root *menu.Node) error
	ContentType() string
}

var rendererNames = normalization.NewNormalizer("renderer", map[string]string{
	"":         "text",
	"text":     "text",
	"txt":      "text",
	"html":     "html",
	"markdown": "markdown",
	"md":       "markdown",
	"json":     "json",
}, "")

// New returns the renderer registered under name: text, html, markdown or json.
func New(name string) (Renderer, error) {
	kind, err := rendererNames.NormalizeWithError(name)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "html":
		return HTML{ID: "main-menu", Class: "sm sm-dox"}, nil
	case "markdown":
		return codecRenderer{format: codec.FormatMarkdown, contentType: "text/markdown; charset=utf-8"}, nil
	case "json":
		return codecRenderer{format: codec.FormatJSON, contentType: "application/json"}, nil
	}
	return Text{Indent: "  "}, nil
}

// Text renders an indented outline, one entry per line: label, then the
// target in brackets.
type Text struct {
	Indent  string
	HideURL bool
}

func (Text) ContentType() string { return "text/plain; charset=utf-8" }

func (t Text) Render(w io.Writer, root *menu.Node) error {
	bw := bufio.NewWriter(w)
	for e, err := range menu.Walk(root) {
		if err != nil {
			return err
		}
		bw.WriteString(strings.Repeat(t.Indent, e.Depth))
		bw.WriteString(singleLine(e.Label))
		if !t.HideURL {
			fmt.Fprintf(bw, " [%s]", singleLine(e.URL))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// singleLine escapes control characters so an entry stays on one line.
func singleLine(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// HTML renders nested <ul>/<li>/<a> elements, the markup the site's menu
// script builds at page load.
type HTML struct {
	ID    string
	Class string
	// BaseURL is prefixed to every relative link.
	BaseURL string
}

func (HTML) ContentType() string { return "text/html; charset=utf-8" }

func (h HTML) Render(w io.Writer, root *menu.Node) error {
	doc, err := h.Build(root)
	if err != nil {
		return err
	}
	if err := html.Render(w, doc); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Build returns the <ul> element tree without serializing it.
func (h HTML) Build(root *menu.Node) (*html.Node, error) {
	top := element(atom.Ul)
	if h.ID != "" {
		top.Attr = append(top.Attr, html.Attribute{Key: "id", Val: h.ID})
	}
	if h.Class != "" {
		top.Attr = append(top.Attr, html.Attribute{Key: "class", Val: h.Class})
	}

	// lists[d] is the <ul> that receives entries of depth d.
	lists := []*html.Node{top}
	for e, err := range menu.Walk(root) {
		if err != nil {
			return nil, err
		}
		lists = lists[:e.Depth+1]

		a := element(atom.A)
		a.Attr = []html.Attribute{{Key: "href", Val: h.href(e.URL)}}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: e.Label})
		li := element(atom.Li)
		li.AppendChild(a)
		lists[e.Depth].AppendChild(li)

		if !e.Node.IsLeaf() {
			sub := element(atom.Ul)
			li.AppendChild(sub)
			lists = append(lists, sub)
		}
	}
	return top, nil
}

func (h HTML) href(u string) string {
	if h.BaseURL == "" || menu.SplitURL(u).IsExternal() || strings.HasPrefix(u, "/") {
		return u
	}
	return strings.TrimSuffix(h.BaseURL, "/") + "/" + u
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

type codecRenderer struct {
	format      codec.Format
	contentType string
}

func (c codecRenderer) ContentType() string { return c.contentType }

func (c codecRenderer) Render(w io.Writer, root *menu.Node) error {
	return codec.Encode(w, root, c.format, codec.Options{})
}
