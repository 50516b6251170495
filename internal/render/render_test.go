package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/menudata"
)

func tree() *menu.Node {
	return &menu.Node{Children: []*menu.Node{
		{Text: "Main Page", URL: "index.xhtml"},
		{Text: "Files", URL: "files.xhtml", Children: []*menu.Node{
			{Text: "File List", URL: "files.xhtml"},
			{Text: "File Members", URL: "globals.xhtml", Children: []*menu.Node{
				{Text: "a", URL: "globals.xhtml#index_a"},
			}},
		}},
		{Text: "<Ext>", URL: "https://example.org/"},
	}}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{Indent: "  "}.Render(&buf, tree()))
	assert.Equal(t, strings.Join([]string{
		"Main Page [index.xhtml]",
		"Files [files.xhtml]",
		"  File List [files.xhtml]",
		"  File Members [globals.xhtml]",
		"    a [globals.xhtml#index_a]",
		"<Ext> [https://example.org/]",
		"",
	}, "\n"), buf.String())

	buf.Reset()
	require.NoError(t, Text{Indent: "\t", HideURL: true}.Render(&buf, tree()))
	assert.Equal(t, "Main Page\nFiles\n\tFile List\n\tFile Members\n\t\ta\n<Ext>\n", buf.String())
}

func TestTextRendererKeepsEntriesOnOneLine(t *testing.T) {
	root := &menu.Node{Children: []*menu.Node{
		{Text: "line\nbreak", URL: "a.xhtml"},
		{Text: "Tab\there", URL: "b.xhtml"},
	}}
	var buf bytes.Buffer
	require.NoError(t, Text{Indent: "  "}.Render(&buf, root))
	assert.Equal(t, "line\\nbreak [a.xhtml]\nTab\\there [b.xhtml]\n", buf.String())
}

func TestHTMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML{ID: "main-menu", Class: "sm sm-dox"}.Render(&buf, tree()))
	want := `<ul id="main-menu" class="sm sm-dox">` +
		`<li><a href="index.xhtml">Main Page</a></li>` +
		`<li><a href="files.xhtml">Files</a><ul>` +
		`<li><a href="files.xhtml">File List</a></li>` +
		`<li><a href="globals.xhtml">File Members</a><ul>` +
		`<li><a href="globals.xhtml#index_a">a</a></li>` +
		`</ul></li></ul></li>` +
		`<li><a href="https://example.org/">&lt;Ext&gt;</a></li>` +
		"</ul>\n"
	assert.Equal(t, want, buf.String())
}

func TestHTMLBaseURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML{BaseURL: "/docs/"}.Render(&buf, tree()))
	assert.Contains(t, buf.String(), `<a href="/docs/globals.xhtml#index_a">`)
	assert.Contains(t, buf.String(), `<a href="https://example.org/">`)
}

func TestHTMLMirrorsSiteTree(t *testing.T) {
	root := menudata.Root()
	doc, err := HTML{}.Build(root)
	require.NoError(t, err)

	var count func(n *menu.Node) int
	count = func(n *menu.Node) int {
		total := len(n.Children)
		for _, c := range n.Children {
			total += count(c)
		}
		return total
	}

	var anchors []string
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			anchors = append(anchors, n.FirstChild.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(doc)
	assert.Len(t, anchors, count(root))
	assert.Equal(t, []string{"Main Page", "Namespaces", "Namespace List"}, anchors[:3])
}

func TestRenderersRejectCycles(t *testing.T) {
	root := tree()
	files := root.Children[1]
	files.Children[1].Children = append(files.Children[1].Children, files)

	for _, name := range []string{"text", "html", "markdown", "json"} {
		r, err := New(name)
		require.NoError(t, err)
		assert.Error(t, r.Render(&bytes.Buffer{}, root), name)
	}
}

func TestNew(t *testing.T) {
	r, err := New("markdown")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tree()))
	assert.True(t, strings.HasPrefix(buf.String(), "- [Main Page](index.xhtml)\n"))
	assert.Equal(t, "text/markdown; charset=utf-8", r.ContentType())

	_, err = New("pdf")
	assert.Error(t, err)
}
