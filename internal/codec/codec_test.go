package codec_test

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/menudata"
)

func small() *menu.Node {
	return &menu.Node{Children: []*menu.Node{
		{Text: "Main Page", URL: "index.xhtml"},
		{Text: "Class Members", URL: "functions.xhtml", Children: []*menu.Node{
			{Text: "~", URL: "functions_~.xhtml#index__7E"},
			{Text: "a_b", URL: "functions_a.xhtml#index_a"},
			{Text: `Quote "q"`, URL: "q.xhtml"},
		}},
	}}
}

func TestDecodeGeneratorOutput(t *testing.T) {
	root, err := codec.Decode(bytes.NewReader(menudata.Source), codec.FormatJS, "menudata.js")
	require.NoError(t, err)
	assert.True(t, menu.Equal(menudata.Root(), root))
	assert.Equal(t, menudata.Root(), root)
}

func TestEncodeJSReproducesGeneratorOutput(t *testing.T) {
	out, err := codec.Marshal(menudata.Root(), codec.FormatJS, codec.Options{})
	require.NoError(t, err)
	assert.Equal(t, string(menudata.Source), string(out))
}

func TestEncodeGoReproducesGeneratedFile(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("..", "menudata", "menudata_gen.go"))
	require.NoError(t, err)

	out, err := codec.Marshal(menudata.Root(), codec.FormatGo, codec.Options{Package: "menudata", GoVar: "site"})
	require.NoError(t, err)
	assert.Equal(t, string(want), string(out))
}

func TestRoundTrips(t *testing.T) {
	for _, f := range []codec.Format{codec.FormatJSON, codec.FormatYAML, codec.FormatJS, codec.FormatMarkdown} {
		t.Run(string(f), func(t *testing.T) {
			for name, tree := range map[string]*menu.Node{"small": small(), "site": menudata.Root()} {
				data, err := codec.Marshal(tree, f, codec.Options{})
				require.NoError(t, err, name)

				back, err := codec.Decode(bytes.NewReader(data), f, name)
				require.NoError(t, err, name)
				assert.Equal(t, tree, back, name)
			}
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	root := &menu.Node{Children: []*menu.Node{
		{Text: "Main Page", URL: "index.xhtml"},
		{Text: "Files", URL: "files.xhtml", Children: []*menu.Node{{Text: "File List", URL: "files.xhtml"}}},
	}}
	out, err := codec.Marshal(root, codec.FormatJSON, codec.Options{Indent: "-"})
	require.NoError(t, err)
	assert.Equal(t, `{"children":[{"text":"Main Page","url":"index.xhtml"},{"text":"Files","url":"files.xhtml","children":[{"text":"File List","url":"files.xhtml"}]}]}`+"\n", string(out))
}

func TestEncodeMarkdown(t *testing.T) {
	out, err := codec.Marshal(small(), codec.FormatMarkdown, codec.Options{})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"- [Main Page](index.xhtml)",
		"- [Class Members](functions.xhtml)",
		"  - [~](functions_~.xhtml#index__7E)",
		`  - [a\_b](functions_a.xhtml#index_a)`,
		`  - [Quote "q"](q.xhtml)`,
		"",
	}, "\n"), string(out))
}

func TestDecodeMarkdownIgnoresProse(t *testing.T) {
	src := "# Navigation\n\nGenerated menu.\n\n- [Main Page](index.xhtml)\n- [Files](files.xhtml)\n  - [File List](files.xhtml)\n"
	root, err := codec.Decode(strings.NewReader(src), codec.FormatMarkdown, "nav.md")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "File List", root.Children[1].Children[0].Text)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name   string
		format codec.Format
		input  string
		cat    errors.ErrorCategory
	}{
		{"json unknown field", codec.FormatJSON, `{"children":[{"text":"a","url":"b","icon":"x"}]}`, errors.CategoryParse},
		{"json trailing", codec.FormatJSON, `{"children":[{"text":"a","url":"b"}]} {}`, errors.CategoryParse},
		{"json missing url", codec.FormatJSON, `{"children":[{"text":"a"}]}`, errors.CategoryStructure},
		{"yaml empty children", codec.FormatYAML, "children:\n  - text: a\n    url: b\n    children: []\n", errors.CategoryStructure},
		{"js not an object", codec.FormatJS, `var menudata=[1,2];`, errors.CategoryParse},
		{"js unknown key", codec.FormatJS, `var menudata={children:[{text:"a",url:"b",icon:"c"}]};`, errors.CategoryParse},
		{"js no declaration", codec.FormatJS, `console.log("hi");`, errors.CategoryParse},
		{"js syntax", codec.FormatJS, `var menudata={children:[`, errors.CategoryParse},
		{"markdown plain item", codec.FormatMarkdown, "- just text\n", errors.CategoryParse},
		{"markdown nothing", codec.FormatMarkdown, "# Title only\n", errors.CategoryParse},
		{"go is write only", codec.FormatGo, "package x", errors.CategoryValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(strings.NewReader(tc.input), tc.format, "input")
			require.Error(t, err)
			assert.Equal(t, tc.cat, errors.GetCategory(err), "%v", err)
		})
	}
}

func TestDecodeStructureErrorIsLoadError(t *testing.T) {
	_, err := codec.Decode(strings.NewReader(`{"children":[{"text":"a"}]}`), codec.FormatJSON, "menu.json")
	var le *menu.LoadError
	require.True(t, stderrors.As(err, &le))
	assert.Equal(t, "menu.json", le.Source)
}

func TestDecodeJSEscapes(t *testing.T) {
	src := `var menudata={children:[{text:'It\'s ét\xe9',url:"a\"b.xhtml"},{"text":"Tab\there","url":"t.xhtml"}]};`
	root, err := codec.Decode(strings.NewReader(src), codec.FormatJS, "inline")
	require.NoError(t, err)
	assert.Equal(t, "It's été", root.Children[0].Text)
	assert.Equal(t, `a"b.xhtml`, root.Children[0].URL)
	assert.Equal(t, "Tab\there", root.Children[1].Text)
}

func TestEncodeRejectsInvalidTree(t *testing.T) {
	_, err := codec.Marshal(&menu.Node{Children: []*menu.Node{{Text: "x"}}}, codec.FormatJS, codec.Options{})
	assert.ErrorIs(t, err, menu.ErrLoad)
}

func TestEncodeJSOptions(t *testing.T) {
	out, err := codec.Marshal(small(), codec.FormatJS, codec.Options{OmitLicense: true, VarName: "navtree"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "var navtree={children:[\n{text:\"Main Page\""), string(out))
	assert.Contains(t, string(out), `{text:"Quote \"q\"",url:"q.xhtml"}]}]}`)
}

func TestFormatDetection(t *testing.T) {
	cases := map[string]codec.Format{
		"menudata.js": codec.FormatJS,
		"nav.JSON":    codec.FormatJSON,
		"nav.yml":     codec.FormatYAML,
		"nav.yaml":    codec.FormatYAML,
		"SUMMARY.md":  codec.FormatMarkdown,
		"gen.go":      codec.FormatGo,
	}
	for path, want := range cases {
		got, err := codec.Detect(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := codec.Detect("nav.txt")
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	f, err := codec.ParseFormat(" Markdown ")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatMarkdown, f)
	_, err = codec.ParseFormat("toml")
	assert.Error(t, err)
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nav.yaml")

	require.NoError(t, codec.WriteFile(path, small(), "", codec.Options{}))
	back, err := codec.ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, small(), back)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	_, err = codec.ReadFile(filepath.Join(dir, "missing.json"), "")
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestEncodedEdgeTreesLoadBack(t *testing.T) {
	trees := map[string]*menu.Node{
		"empty root":          {},
		"labelled root":       {Text: "Docs", URL: "index.xhtml", Children: []*menu.Node{{Text: "Main Page", URL: "index.xhtml"}}},
		"labelled empty root": {Text: "Docs", URL: "index.xhtml"},
		"newline in label":    {Children: []*menu.Node{{Text: "line\nbreak", URL: "a.xhtml"}}},
		"tab in url":          {Children: []*menu.Node{{Text: "Tab", URL: "a\t.xhtml"}}},
	}
	for _, f := range []codec.Format{codec.FormatJSON, codec.FormatYAML, codec.FormatJS, codec.FormatMarkdown} {
		for name, tree := range trees {
			data, err := codec.Marshal(tree, f, codec.Options{})
			if err != nil {
				assert.True(t, errors.HasCategory(err, errors.CategoryValidation), "%s/%s: %v", f, name, err)
				continue
			}
			back, err := codec.Decode(bytes.NewReader(data), f, name)
			require.NoError(t, err, "%s/%s", f, name)
			assert.True(t, menu.Equal(tree, back), "%s/%s: %#v", f, name, back)
		}
	}
}

func TestEncodeRejectsUnrepresentableTrees(t *testing.T) {
	labelled := &menu.Node{Text: "Docs", URL: "index.xhtml", Children: []*menu.Node{{Text: "Main Page", URL: "index.xhtml"}}}
	multiline := &menu.Node{Children: []*menu.Node{{Text: "line\nbreak", URL: "a.xhtml"}}}

	cases := []struct {
		name string
		tree *menu.Node
		f    codec.Format
	}{
		{"empty js", &menu.Node{}, codec.FormatJS},
		{"empty markdown", &menu.Node{}, codec.FormatMarkdown},
		{"empty go", &menu.Node{}, codec.FormatGo},
		{"labelled js", labelled, codec.FormatJS},
		{"labelled markdown", labelled, codec.FormatMarkdown},
		{"labelled go", labelled, codec.FormatGo},
		{"multiline markdown", multiline, codec.FormatMarkdown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Marshal(tc.tree, tc.f, codec.Options{})
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation), "%v", err)
		})
	}

	for _, f := range []codec.Format{codec.FormatJSON, codec.FormatYAML, codec.FormatJS} {
		_, err := codec.Marshal(multiline, f, codec.Options{})
		assert.NoError(t, err, f)
	}
}
